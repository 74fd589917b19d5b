// Package gateway is a typed HTTP client for the WhatsApp gateway REST API.
// Every method is one remote capability; calls are synchronous and carry an
// explicit timeout so a hung gateway cannot block a webhook forever.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client talks to one gateway instance with Basic auth credentials.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// New creates a Client for the gateway at baseURL. A non-positive timeout
// falls back to 30 seconds.
func New(baseURL, username, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + creds,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gateway response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Code: "ERROR", Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}

	if resp.StatusCode >= 400 || out.Code == "ERROR" {
		log.Debug().
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Str("code", out.Code).
			Msg("gateway call failed")
		return nil, &APIError{StatusCode: resp.StatusCode, Code: out.Code, Message: out.Message}
	}

	return &out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building gateway request: %w", err)
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling gateway payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// postForm uploads a multipart form. files maps field name to a local path;
// fields are plain form values.
func (c *Client) postForm(ctx context.Context, endpoint string, fields map[string]string, files map[string]string) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		part, err := w.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("building form part %s: %w", field, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("copying %s into form: %w", path, err)
		}
		f.Close()
	}
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

// --- App ---

func (c *Client) Devices(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/app/devices", nil)
}

// --- User ---

func (c *Client) UserInfo(ctx context.Context, phone string) (*Response, error) {
	return c.get(ctx, "/user/info", url.Values{"phone": {phone}})
}

func (c *Client) UserAvatar(ctx context.Context, phone string, isPreview, isCommunity bool) (*Response, error) {
	params := url.Values{"phone": {phone}}
	if isPreview {
		params.Set("is_preview", "true")
	}
	if isCommunity {
		params.Set("is_community", "true")
	}
	return c.get(ctx, "/user/avatar", params)
}

func (c *Client) UserChangeAvatar(ctx context.Context, avatarPath string) (*Response, error) {
	return c.postForm(ctx, "/user/avatar", nil, map[string]string{"avatar": avatarPath})
}

func (c *Client) UserChangePushName(ctx context.Context, pushName string) (*Response, error) {
	return c.postJSON(ctx, "/user/pushname", map[string]string{"push_name": pushName})
}

func (c *Client) UserMyPrivacy(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/user/my/privacy", nil)
}

func (c *Client) UserMyGroups(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/user/my/groups", nil)
}

func (c *Client) UserMyNewsletters(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/user/my/newsletters", nil)
}

func (c *Client) UserMyContacts(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/user/my/contacts", nil)
}

func (c *Client) UserCheck(ctx context.Context, phone string) (*Response, error) {
	return c.get(ctx, "/user/check", url.Values{"phone": {phone}})
}

// --- Send ---

func (c *Client) SendMessage(ctx context.Context, phone, message string, opts MessageOptions) (*Response, error) {
	payload := map[string]any{
		"phone":        phone,
		"message":      message,
		"is_forwarded": opts.IsForwarded,
	}
	if opts.ReplyMessageID != "" {
		payload["reply_message_id"] = opts.ReplyMessageID
	}
	return c.postJSON(ctx, "/send/message", payload)
}

func mediaFields(phone string, opts MediaOptions) map[string]string {
	fields := map[string]string{
		"phone":        phone,
		"view_once":    strconv.FormatBool(opts.ViewOnce),
		"compress":     strconv.FormatBool(opts.Compress),
		"is_forwarded": strconv.FormatBool(opts.IsForwarded),
	}
	if opts.Caption != "" {
		fields["caption"] = opts.Caption
	}
	return fields
}

// SendImage sends a local image file, or an external URL when imagePath is
// empty and imageURL is set.
func (c *Client) SendImage(ctx context.Context, phone, imagePath, imageURL string, opts MediaOptions) (*Response, error) {
	fields := mediaFields(phone, opts)
	files := map[string]string{}
	if imagePath != "" {
		files["image"] = imagePath
	} else if imageURL != "" {
		fields["image_url"] = imageURL
	}
	return c.postForm(ctx, "/send/image", fields, files)
}

func (c *Client) SendAudio(ctx context.Context, phone, audioPath string, isForwarded bool) (*Response, error) {
	fields := map[string]string{
		"phone":        phone,
		"is_forwarded": strconv.FormatBool(isForwarded),
	}
	return c.postForm(ctx, "/send/audio", fields, map[string]string{"audio": audioPath})
}

func (c *Client) SendFile(ctx context.Context, phone, filePath, caption string, isForwarded bool) (*Response, error) {
	fields := map[string]string{
		"phone":        phone,
		"is_forwarded": strconv.FormatBool(isForwarded),
	}
	if caption != "" {
		fields["caption"] = caption
	}
	return c.postForm(ctx, "/send/file", fields, map[string]string{"file": filePath})
}

func (c *Client) SendVideo(ctx context.Context, phone, videoPath string, opts MediaOptions) (*Response, error) {
	return c.postForm(ctx, "/send/video", mediaFields(phone, opts), map[string]string{"video": videoPath})
}

func (c *Client) SendContact(ctx context.Context, phone, contactName, contactPhone string, isForwarded bool) (*Response, error) {
	return c.postJSON(ctx, "/send/contact", map[string]any{
		"phone":         phone,
		"contact_name":  contactName,
		"contact_phone": contactPhone,
		"is_forwarded":  isForwarded,
	})
}

func (c *Client) SendLink(ctx context.Context, phone, link, caption string, isForwarded bool) (*Response, error) {
	payload := map[string]any{
		"phone":        phone,
		"link":         link,
		"is_forwarded": isForwarded,
	}
	if caption != "" {
		payload["caption"] = caption
	}
	return c.postJSON(ctx, "/send/link", payload)
}

func (c *Client) SendLocation(ctx context.Context, phone, latitude, longitude string, isForwarded bool) (*Response, error) {
	return c.postJSON(ctx, "/send/location", map[string]any{
		"phone":        phone,
		"latitude":     latitude,
		"longitude":    longitude,
		"is_forwarded": isForwarded,
	})
}

func (c *Client) SendPoll(ctx context.Context, phone, question string, options []string, maxAnswer int) (*Response, error) {
	return c.postJSON(ctx, "/send/poll", map[string]any{
		"phone":      phone,
		"question":   question,
		"options":    options,
		"max_answer": maxAnswer,
	})
}

func (c *Client) SendPresence(ctx context.Context, presence PresenceType) (*Response, error) {
	return c.postJSON(ctx, "/send/presence", map[string]string{"type": string(presence)})
}

// --- Message ---

func (c *Client) messageOp(ctx context.Context, messageID, op string, payload map[string]any) (*Response, error) {
	return c.postJSON(ctx, fmt.Sprintf("/message/%s/%s", messageID, op), payload)
}

func (c *Client) MessageRevoke(ctx context.Context, messageID, phone string) (*Response, error) {
	return c.messageOp(ctx, messageID, "revoke", map[string]any{"phone": phone})
}

func (c *Client) MessageDelete(ctx context.Context, messageID, phone string) (*Response, error) {
	return c.messageOp(ctx, messageID, "delete", map[string]any{"phone": phone})
}

func (c *Client) MessageReaction(ctx context.Context, messageID, phone, emoji string) (*Response, error) {
	return c.messageOp(ctx, messageID, "reaction", map[string]any{"phone": phone, "emoji": emoji})
}

func (c *Client) MessageUpdate(ctx context.Context, messageID, phone, message string) (*Response, error) {
	return c.messageOp(ctx, messageID, "update", map[string]any{"phone": phone, "message": message})
}

func (c *Client) MessageRead(ctx context.Context, messageID, phone string) (*Response, error) {
	return c.messageOp(ctx, messageID, "read", map[string]any{"phone": phone})
}

func (c *Client) MessageStar(ctx context.Context, messageID, phone string) (*Response, error) {
	return c.messageOp(ctx, messageID, "star", map[string]any{"phone": phone})
}

func (c *Client) MessageUnstar(ctx context.Context, messageID, phone string) (*Response, error) {
	return c.messageOp(ctx, messageID, "unstar", map[string]any{"phone": phone})
}

// --- Group ---

func (c *Client) GroupJoinWithLink(ctx context.Context, link string) (*Response, error) {
	return c.postJSON(ctx, "/group/join-with-link", map[string]string{"link": link})
}

func (c *Client) GroupLeave(ctx context.Context, groupID string) (*Response, error) {
	return c.postJSON(ctx, "/group/leave", map[string]string{"group_id": groupID})
}

func (c *Client) GroupCreate(ctx context.Context, name string, participants []string) (*Response, error) {
	return c.postJSON(ctx, "/group", map[string]any{"name": name, "participants": participants})
}

func (c *Client) GroupAddParticipants(ctx context.Context, groupID string, participants []string) (*Response, error) {
	return c.postJSON(ctx, "/group/participants", map[string]any{"group_id": groupID, "participants": participants})
}

func (c *Client) GroupRemoveParticipant(ctx context.Context, groupID, participant string) (*Response, error) {
	return c.postJSON(ctx, "/group/participants/remove", map[string]string{"group_id": groupID, "participant": participant})
}

func (c *Client) GroupPromoteParticipant(ctx context.Context, groupID, participant string) (*Response, error) {
	return c.postJSON(ctx, "/group/participants/promote", map[string]string{"group_id": groupID, "participant": participant})
}

func (c *Client) GroupDemoteParticipant(ctx context.Context, groupID, participant string) (*Response, error) {
	return c.postJSON(ctx, "/group/participants/demote", map[string]string{"group_id": groupID, "participant": participant})
}

func (c *Client) GroupListRequestedParticipants(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/group/participant-requests", nil)
}

func (c *Client) GroupApproveRequestedParticipant(ctx context.Context, groupID, participant string) (*Response, error) {
	return c.postJSON(ctx, "/group/participant-requests/approve", map[string]string{"group_id": groupID, "participant": participant})
}

func (c *Client) GroupRejectRequestedParticipant(ctx context.Context, groupID, participant string) (*Response, error) {
	return c.postJSON(ctx, "/group/participant-requests/reject", map[string]string{"group_id": groupID, "participant": participant})
}

// --- Newsletter ---

func (c *Client) NewsletterUnfollow(ctx context.Context, newsletterID string) (*Response, error) {
	return c.postJSON(ctx, "/newsletter/unfollow", map[string]string{"newsletter_id": newsletterID})
}
