package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/photographer-availability-resolver/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type BackendAdapter struct {
	client    *http.Client
	baseURL   string
	checkPath string
	listPath  string
	token     string
	logger    out.LoggerPort

	// Срок действия токена, если токен является JWT с claim exp
	tokenExpiresAt *time.Time
}

type checkAvailabilityRequest struct {
	PhotographerID domain.PhotographerID `json:"photographer_id"`
	Date           string                `json:"date"`
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	adapter := &BackendAdapter{
		client: &http.Client{
			Timeout:   cfg.Backend.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:   cfg.Backend.URL,
		checkPath: cfg.Backend.CheckPath,
		listPath:  cfg.Backend.ListPath,
		token:     cfg.Backend.Token,
		logger:    logger.WithModule("BackendAdapter"),
	}

	adapter.tokenExpiresAt = tokenExpiration(adapter.token)

	return adapter
}

func (a *BackendAdapter) CheckAvailability(ctx context.Context, photographerID domain.PhotographerID, date time.Time) ([]domain.AvailabilitySlot, error) {
	logger := a.logger.WithFields(out.LogFields{
		"photographerId": photographerID,
		"date":           utils.FormatDate(date),
	})
	logger.Debug("backend.availability.check", out.LogFields{})

	body, err := json.Marshal(checkAvailabilityRequest{
		PhotographerID: photographerID,
		Date:           utils.FormatDate(date),
	})
	if err != nil {
		logger.Error("backend.availability.check_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	url := a.baseURL + a.checkPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logger.Error("backend.availability.check_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	slots, err := a.doSlotsRequest(logger, "backend.availability.check", req)
	if err != nil {
		return nil, err
	}

	logger.Debug("backend.availability.check_success", out.LogFields{
		"slotsCount": len(slots),
	})

	return slots, nil
}

func (a *BackendAdapter) ListAvailability(ctx context.Context, photographerID domain.PhotographerID) ([]domain.AvailabilitySlot, error) {
	logger := a.logger.WithFields(out.LogFields{
		"photographerId": photographerID,
	})
	logger.Debug("backend.availability.list", out.LogFields{})

	url := a.baseURL + fmt.Sprintf(a.listPath, photographerID.Int())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Error("backend.availability.list_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	slots, err := a.doSlotsRequest(logger, "backend.availability.list", req)
	if err != nil {
		return nil, err
	}

	logger.Debug("backend.availability.list_success", out.LogFields{
		"slotsCount": len(slots),
	})

	return slots, nil
}

// doSlotsRequest выполняет запрос и достает список слотов из конверта {"data": [...]}.
// Отсутствующий или не массивный data дает пустой список, а не ошибку.
func (a *BackendAdapter) doSlotsRequest(logger out.LoggerPort, event string, req *http.Request) ([]domain.AvailabilitySlot, error) {
	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		a.checkTokenExpiration(logger)
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		logger.Error(event+"_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error(event+"_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var response out.BackendResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		logger.Error(event+".decode_response_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	slots := []domain.AvailabilitySlot{}
	if len(response.Data) == 0 || !isJSONArray(response.Data) {
		logger.Warn(event+".malformed_data", out.LogFields{
			"data": string(response.Data),
		})
		return slots, nil
	}

	if err := json.Unmarshal(response.Data, &slots); err != nil {
		logger.Error(event+".decode_data_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return slots, nil
}

func (a *BackendAdapter) checkTokenExpiration(logger out.LoggerPort) {
	if a.tokenExpiresAt == nil {
		return
	}
	if time.Now().After(*a.tokenExpiresAt) {
		logger.Warn("backend.token.expired", out.LogFields{
			"expiredAt": a.tokenExpiresAt.Format(time.RFC3339),
		})
	}
}

// tokenExpiration читает exp из JWT без проверки подписи, подпись проверяет бэкенд
func tokenExpiration(token string) *time.Time {
	if token == "" {
		return nil
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}

	return &exp.Time
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
