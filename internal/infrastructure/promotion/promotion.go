package promotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/cfg"
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/jitter"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
)

// Client — HTTP-клиент промо-сервиса. Проверяет код и возвращает размер скидки.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     logger.Logger
}

func NewClient(cfg *cfg.PromoCfg, logger logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

type validateRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

type validateResponse struct {
	Valid       bool   `json:"valid"`
	PromotionID int64  `json:"promotion_id"`
	Discount    int64  `json:"discount"`
	Reason      string `json:"reason,omitempty"`
}

// Validate проверяет промокод с retry-логикой и экспоненциальной задержкой.
// Невалидный код не ретраится: сервис уже дал окончательный ответ.
func (c *Client) Validate(ctx context.Context, code string, subtotal int64) (*usecase.PromotionGrant, error) {
	const (
		op         = "promotion.Validate"
		baseJitter = 500 * time.Millisecond
		maxJitter  = 10 * time.Second
	)

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		grant, retryable, err := c.validate(ctx, code, subtotal)
		if err == nil {
			return grant, nil
		}
		if !retryable {
			return nil, e.Wrap(op, err)
		}

		if attempt == c.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", c.maxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		c.logger.Warnf("promotion validate failed, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

func (c *Client) validate(ctx context.Context, code string, subtotal int64) (*usecase.PromotionGrant, bool, error) {
	body, err := json.Marshal(validateRequest{Code: code, Subtotal: subtotal})
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/promotions/validate", bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("promotion service returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("promotion service returned %d", resp.StatusCode)
	}

	var res validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, true, err
	}

	if !res.Valid {
		return nil, false, fmt.Errorf("promotion code rejected: %s", res.Reason)
	}

	return &usecase.PromotionGrant{
		PromotionID: res.PromotionID,
		Discount:    res.Discount,
	}, false, nil
}
