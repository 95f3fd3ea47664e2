package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ouarghii/evento/internal/common"
)

// Role names as the server spells them.
const (
	RoleUser        = "user"
	RoleContributor = "contributor"
	RoleAdmin       = "admin"
)

// Profile is an account as the REST API returns it.
type Profile struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Photo  string   `json:"photo,omitempty"`
	Bio    string   `json:"bio,omitempty"`
	Skills []string `json:"skills,omitempty"`
	Status string   `json:"status,omitempty"`
	Token  string   `json:"token,omitempty"`
}

// Upload is a presigned object-storage PUT target.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

type RESTClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewRESTClient(baseURL string, hc *http.Client) *RESTClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &RESTClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *RESTClient) SetToken(token string) { c.token = token }

func (c *RESTClient) Token() string { return c.token }

// rolePrefix maps a role to the path prefix of its account endpoints.
func rolePrefix(role string) (string, error) {
	switch role {
	case RoleUser:
		return "", nil
	case RoleContributor:
		return "/contributor", nil
	case RoleAdmin:
		return "/admin", nil
	}
	return "", fmt.Errorf("unknown role %q", role)
}

// Register creates an account. Creating an admin requires an admin session.
func (c *RESTClient) Register(ctx context.Context, role, name, email, password string) (*Profile, error) {
	prefix, err := rolePrefix(role)
	if err != nil {
		return nil, err
	}
	body := map[string]string{"name": name, "email": email, "password": password}
	var p Profile
	if err := c.do(ctx, http.MethodPost, prefix+"/register", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Login authenticates and keeps the returned token for later calls.
func (c *RESTClient) Login(ctx context.Context, role, email, password string) (*Profile, error) {
	prefix, err := rolePrefix(role)
	if err != nil {
		return nil, err
	}
	body := map[string]string{"email": email, "password": password}
	var p Profile
	if err := c.do(ctx, http.MethodPost, prefix+"/login", body, &p); err != nil {
		return nil, err
	}
	c.token = p.Token
	return &p, nil
}

// Profile returns the caller's profile, or nil when the session is not
// valid any more.
func (c *RESTClient) Profile(ctx context.Context) (*Profile, error) {
	var p *Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	c.token = ""
	return err
}

// Contributors lists contributor accounts, optionally filtered by status.
func (c *RESTClient) Contributors(ctx context.Context, status string) ([]*Profile, error) {
	path := "/admin/contributors"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var list []*Profile
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *RESTClient) AcceptContributor(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodPost, "/admin/contributors/"+url.PathEscape(id)+"/accept", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RESTClient) DeclineContributor(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodPost, "/admin/contributors/"+url.PathEscape(id)+"/decline", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ImageUploadURL asks for a presigned URL to upload an event image of the
// given content type. The upload must send that type as Content-Type.
func (c *RESTClient) ImageUploadURL(ctx context.Context, contentType string) (*Upload, error) {
	var u Upload
	in := map[string]string{"content_type": contentType}
	if err := c.do(ctx, http.MethodPost, "/events/image-upload-url", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", common.Bearer(c.token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Code, apiErr.Message = eb.Error, eb.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
