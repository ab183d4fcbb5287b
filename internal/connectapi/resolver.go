package connectapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/connect"
	"github.com/aws/aws-sdk-go-v2/service/connect/types"
)

var (
	// ErrUserNotFound means the search matched no users.
	ErrUserNotFound = errors.New("no user found")
	// ErrMultipleUsers means the search matched more than one user.
	ErrMultipleUsers = errors.New("multiple users found")
	// ErrMissingUserID means the single match carried no user id.
	ErrMissingUserID = errors.New("user id not found in response")
)

// ResolveUserID finds the Connect user id for an exact username match within
// the client's instance. Read-only; any outcome other than exactly one match
// with a non-empty id is an error.
func (c *Client) ResolveUserID(ctx context.Context, username string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.api.SearchUsers(ctx, &connect.SearchUsersInput{
		InstanceId: aws.String(c.instanceID),
		SearchCriteria: &types.UserSearchCriteria{
			StringCondition: &types.StringCondition{
				FieldName:      aws.String("Username"),
				Value:          aws.String(username),
				ComparisonType: types.StringComparisonTypeExact,
			},
		},
	})
	if err != nil {
		return "", c.callError("search", err)
	}

	switch {
	case len(out.Users) == 0:
		return "", fmt.Errorf("%w with username: %s", ErrUserNotFound, username)
	case len(out.Users) > 1:
		return "", fmt.Errorf("%w with username: %s", ErrMultipleUsers, username)
	}
	id := aws.ToString(out.Users[0].Id)
	if id == "" {
		return "", fmt.Errorf("%w for username: %s", ErrMissingUserID, username)
	}
	return id, nil
}
