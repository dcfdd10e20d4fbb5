package backendapi

import "context"

// UnreadCount returns the number of unread notifications for the token's user.
func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var resp struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.do(ctx, "GET", "/notifications/unread_count/", token, nil, &resp); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}

// MarkAllRead acknowledges every notification for the token's user.
func (c *Client) MarkAllRead(ctx context.Context, token string) error {
	return c.do(ctx, "POST", "/notifications/mark_all_read/", token, nil, nil)
}
