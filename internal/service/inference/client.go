package inference

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartwaste/internal/model"
)

// Client talks to the hosted detection model over HTTP. The image is sent
// base64-encoded in the request body; confidence and overlap cutoffs are
// passed as query parameters the way the hosted API expects them.
type Client struct {
	endpoint   string
	apiKey     string
	confidence int
	overlap    int
	httpClient *http.Client
}

// NewClient creates an inference client for the given model endpoint.
func NewClient(endpoint, apiKey string, confidence, overlap, timeoutSeconds int) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		confidence: confidence,
		overlap:    overlap,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// Predict runs object detection on a JPEG frame and returns the raw
// detections plus the frame dimensions as reported by the model.
func (c *Client) Predict(image []byte) (*model.InferenceResult, error) {
	reqURL, err := c.buildURL()
	if err != nil {
		return nil, fmt.Errorf("build inference url: %w", err)
	}

	body := base64.StdEncoding.EncodeToString(image)

	req, err := http.NewRequest(http.MethodPost, reqURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result model.InferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// CheckHealth probes the model endpoint without submitting a frame.
func (c *Client) CheckHealth() error {
	reqURL, err := c.buildURL()
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("model service unhealthy: %d", resp.StatusCode)
	}

	return nil
}

// buildURL attaches api key and detection cutoffs to the endpoint.
func (c *Client) buildURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	q.Set("confidence", strconv.Itoa(c.confidence))
	q.Set("overlap", strconv.Itoa(c.overlap))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
