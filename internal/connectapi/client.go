package connectapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/connect"
	"github.com/aws/smithy-go"
)

// API is the capability set this tool needs from Amazon Connect: an exact
// username search and a security-profile assignment. The real connect.Client
// satisfies it; tests inject fakes.
type API interface {
	SearchUsers(ctx context.Context, params *connect.SearchUsersInput, optFns ...func(*connect.Options)) (*connect.SearchUsersOutput, error)
	UpdateUserSecurityProfiles(ctx context.Context, params *connect.UpdateUserSecurityProfilesInput, optFns ...func(*connect.Options)) (*connect.UpdateUserSecurityProfilesOutput, error)
}

// Client wraps the Connect API for a single instance, bounding every call by
// a fixed timeout. No retries are performed at this layer.
type Client struct {
	api        API
	instanceID string
	timeout    time.Duration
}

// New builds a Client against the real AWS SDK using the default credential
// chain (env, shared config, IMDS).
func New(ctx context.Context, instanceID string, timeout time.Duration) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPI(connect.NewFromConfig(cfg), instanceID, timeout), nil
}

// NewWithAPI builds a Client over any API implementation.
func NewWithAPI(api API, instanceID string, timeout time.Duration) *Client {
	return &Client{api: api, instanceID: instanceID, timeout: timeout}
}

// callError maps SDK failures to the distinguishable reasons a row's outcome
// is logged with: timeout, malformed response, service error text, or a
// generic wrap. op is the short human name of the call ("search", "update").
func (c *Client) callError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s", op, c.timeout)
	}
	var se *smithy.SerializationError
	if errors.As(err, &se) {
		return fmt.Errorf("failed to parse %s response: %v", op, se.Err)
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Errorf("%s failed: %s: %s", op, ae.ErrorCode(), ae.ErrorMessage())
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
