package connectapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/connect"
)

// UpdateSecurityProfile assigns the given security profile to the user,
// replacing their current assignment. At-most-once: no idempotency check and
// no retry; a timeout abandons the in-flight call and fails the row.
func (c *Client) UpdateSecurityProfile(ctx context.Context, userID, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.api.UpdateUserSecurityProfiles(ctx, &connect.UpdateUserSecurityProfilesInput{
		InstanceId:         aws.String(c.instanceID),
		UserId:             aws.String(userID),
		SecurityProfileIds: []string{profileID},
	})
	if err != nil {
		return c.callError("update", err)
	}
	return nil
}
