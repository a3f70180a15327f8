package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/skip2/go-qrcode"
)

// ErrQRUnavailable is returned when the service runs without Redis; QR
// nonces need a shared expiring store.
var ErrQRUnavailable = errors.New("qr service unavailable")

// QRService issues bank-transfer QR codes for the deposit flow: the
// agency's account number plus the intended amount, so the customer can
// scan it at the bank instead of copying digits by hand. Codes are
// single-use and expire after five minutes.
type QRService struct {
	redis         *redis.Client
	agencyAccount string
}

func NewQRService(redisClient *redis.Client) *QRService {
	agencyAccount := "00799999002543123456"
	if envAccount := os.Getenv("AGENCY_BANK_ACCOUNT"); envAccount != "" {
		agencyAccount = envAccount
	}
	return &QRService{
		redis:         redisClient,
		agencyAccount: agencyAccount,
	}
}

func (s *QRService) GenerateDepositQR(ctx context.Context, userID string, amount int64) (string, string, error) {
	if s.redis == nil {
		return "", "", ErrQRUnavailable
	}

	qrData := map[string]any{
		"account":   s.agencyAccount,
		"userId":    userID,
		"amount":    amount,
		"timestamp": time.Now().Unix(),
		"nonce":     s.generateNonce(),
	}

	jsonData, err := json.Marshal(qrData)
	if err != nil {
		return "", "", err
	}

	qrCode := base64.URLEncoding.EncodeToString(jsonData)

	key := fmt.Sprintf("depositqr:%s", qrCode)
	if err := s.redis.Set(ctx, key, jsonData, 5*time.Minute).Err(); err != nil {
		return "", "", err
	}

	qr, err := qrcode.New(qrCode, qrcode.Medium)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", "", err
	}

	qrImage := base64.StdEncoding.EncodeToString(buf.Bytes())

	return qrCode, qrImage, nil
}

func (s *QRService) ValidateDepositQR(ctx context.Context, qrData string) (map[string]any, error) {
	if s.redis == nil {
		return nil, ErrQRUnavailable
	}

	key := fmt.Sprintf("depositqr:%s", qrData)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("invalid or expired QR code")
	}
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	s.redis.Del(ctx, key)

	return result, nil
}

func (s *QRService) generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
