package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"controle-financeiro/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	gigaChatOAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	gigaChatBaseURL  = "https://gigachat.devices.sberbank.ru/api/v1"
)

var errUnauthorized = errors.New("gigachat rejected the access token")

// GigaChat talks to Sber's GigaChat: prompts through the gigago SDK and image
// transcription through the REST files and chat endpoints.
type GigaChat struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	vision *gigaVision
	logger *zap.Logger
}

func NewGigaChat(ctx context.Context, cfg config.GigaChatConfig, logger *zap.Logger) (*GigaChat, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GIGACHAT_API_KEY is not set")
	}

	opts := []gigago.Option{gigago.WithCustomScope(cfg.Scope)}
	httpClient := &http.Client{Timeout: 90 * time.Second}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = "You extract structured data from Brazilian purchase receipts. Follow the requested output format exactly."
	model.Temperature = 0.1

	logger.Info("GigaChat client ready", zap.String("model", cfg.Model))

	return &GigaChat{
		client: client,
		model:  model,
		vision: newGigaVision(httpClient, cfg, gigaChatOAuthURL, gigaChatBaseURL, logger),
		logger: logger,
	}, nil
}

// Generate implements extraction.Generator.
func (g *GigaChat) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from GigaChat")
	}
	return resp.Choices[0].Message.Content, nil
}

// DetectText implements extraction.TextDetector.
func (g *GigaChat) DetectText(ctx context.Context, data []byte, contentType string) (string, error) {
	return g.vision.DetectText(ctx, data, contentType)
}

func (g *GigaChat) Close() error {
	if g.client != nil {
		g.client.Close()
	}
	return nil
}

// gigaVision uploads an image and asks the chat endpoint to transcribe it.
// The OAuth token is cached until shortly before it expires.
type gigaVision struct {
	httpClient *http.Client
	apiKey     string
	scope      string
	model      string
	oauthURL   string
	baseURL    string
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	now         func() time.Time
}

func newGigaVision(httpClient *http.Client, cfg config.GigaChatConfig, oauthURL, baseURL string, logger *zap.Logger) *gigaVision {
	return &gigaVision{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		scope:      cfg.Scope,
		model:      cfg.Model,
		oauthURL:   oauthURL,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		now:        time.Now,
	}
}

func (v *gigaVision) DetectText(ctx context.Context, data []byte, contentType string) (string, error) {
	token, err := v.token(ctx)
	if err != nil {
		return "", err
	}

	fileID, err := v.upload(ctx, token, data, contentType)
	if err != nil {
		return "", v.checkAuth(err)
	}

	text, err := v.complete(ctx, token, fileID)
	if err != nil {
		return "", v.checkAuth(err)
	}
	return transcription("gigachat", text)
}

// token returns the cached access token, requesting a new one when needed.
func (v *gigaVision) token(ctx context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.accessToken != "" && v.now().Before(v.expiresAt) {
		return v.accessToken, nil
	}

	form := url.Values{}
	form.Set("scope", v.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}
	rqUID := uuid.New().String()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	// the key is issued already Base64-encoded
	req.Header.Set("Authorization", "Basic "+v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		v.logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d", resp.StatusCode)
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}
	if oauthResp.AccessToken == "" {
		return "", errors.New("empty access token in OAuth response")
	}

	expiresAt := v.now().Add(25 * time.Minute)
	if oauthResp.ExpiresAt > 0 {
		expiresAt = time.UnixMilli(oauthResp.ExpiresAt).Add(-time.Minute)
	}
	v.accessToken = oauthResp.AccessToken
	v.expiresAt = expiresAt

	return v.accessToken, nil
}

// checkAuth drops the cached token when the API rejected it, so the next
// request authenticates again.
func (v *gigaVision) checkAuth(err error) error {
	if errors.Is(err, errUnauthorized) {
		v.mu.Lock()
		v.accessToken = ""
		v.mu.Unlock()
	}
	return err
}

func (v *gigaVision) upload(ctx context.Context, token string, data []byte, contentType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" files can be attached to chat requests
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="receipt%s"`, extensionFor(contentType)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", errUnauthorized
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return "", errors.New("file exceeds GigaChat upload limit")
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	var uploadResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if uploadResp.ID == "" {
		return "", errors.New("upload response without file id")
	}

	v.logger.Debug("File uploaded to GigaChat", zap.String("file_id", uploadResp.ID))
	return uploadResp.ID, nil
}

type gigaChatMessage struct {
	Role        string   `json:"role"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

type gigaChatRequest struct {
	Model       string            `json:"model"`
	Messages    []gigaChatMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	Stream      bool              `json:"stream"`
}

func (v *gigaVision) complete(ctx context.Context, token, fileID string) (string, error) {
	payload, err := json.Marshal(gigaChatRequest{
		Model: v.model,
		Messages: []gigaChatMessage{
			{Role: "user", Content: transcribePrompt, Attachments: []string{fileID}},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call vision: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", errUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("vision request failed with status %d: %s", resp.StatusCode, body)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("no choices in vision response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	case strings.HasPrefix(contentType, "application/pdf"):
		return ".pdf"
	default:
		return ".jpg"
	}
}
