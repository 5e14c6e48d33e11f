package services

import (
	"fmt"
	"os"

	"clipaja/pkg/common"
)

// SessionVerifier resolves a session cookie into a user id. The auth service
// owns users; this service only trusts its verdict.
type SessionVerifier interface {
	VerifySession(cookie string) (*SessionUser, error)
}

type SessionUser struct {
	ID    string
	Email string
	Name  string
	Role  string
}

type SessionClient struct {
	BaseUrl string
}

func NewSessionClient() *SessionClient {
	return &SessionClient{BaseUrl: os.Getenv("SESSION_URL")}
}

// VerifySession forwards the cookie to the auth service's session endpoint.
// A nil user with nil error means no active session.
func (c *SessionClient) VerifySession(cookie string) (*SessionUser, error) {
	headers := map[string]string{
		"Cookie": cookie,
		"Accept": "application/json",
	}

	resp, err := common.Get(fmt.Sprintf("%s/api/auth/get-session", c.BaseUrl), headers)
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}

	respMap, ok := resp.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	userMap, ok := respMap["user"].(map[string]interface{})
	if !ok {
		return nil, nil
	}

	user := &SessionUser{}
	user.ID, _ = userMap["id"].(string)
	user.Email, _ = userMap["email"].(string)
	user.Name, _ = userMap["name"].(string)
	user.Role, _ = userMap["role"].(string)

	if user.ID == "" {
		return nil, nil
	}
	return user, nil
}
