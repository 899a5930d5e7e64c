// Package storage implementa o porto Uploader de blobs. O núcleo guarda
// apenas a referência devolvida; bytes nunca entram no banco.
package storage

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
)

var _ receipts.Uploader = (*S3Uploader)(nil)

// S3Config parâmetros para assinar requisições compatíveis com S3 (AWS, R2, MinIO).
type S3Config struct {
	Endpoint     string // ex.: https://<account>.r2.cloudflarestorage.com
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	PublicDomain string // domínio público de leitura; vazio usa endpoint/bucket
}

// S3Uploader envia objetos com assinatura SigV4 usando só net/http.
type S3Uploader struct {
	cfg    S3Config
	client *http.Client
}

// NewS3Uploader constrói o uploader. Falha cedo se faltar configuração.
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage: configuração S3 incompleta")
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}
	return &S3Uploader{cfg: cfg, client: &http.Client{Timeout: 15 * time.Second}}, nil
}

// Upload faz PUT do objeto e devolve a URL pública. Qualquer falha embrulha
// domain.ErrStorageUnavailable; o ciclo de vida chamador decide o que fazer.
func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("storage: chave do objeto vazia: %w", domain.ErrStorageUnavailable)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("storage: corpo vazio: %w", domain.ErrStorageUnavailable)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	endpoint, err := url.Parse(u.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("storage: endpoint inválido: %w", domain.ErrStorageUnavailable)
	}
	objectPath := "/" + u.cfg.Bucket + "/" + strings.TrimPrefix(key, "/")

	now := time.Now().UTC()
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := hex.EncodeToString(sha256Sum(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint.Scheme+"://"+endpoint.Host+objectPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("storage: criar request: %w", domain.ErrStorageUnavailable)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	req.Header.Set("X-Amz-Date", amzDate)

	// SigV4: canonical request → string to sign → assinatura HMAC encadeada.
	canonicalHeaders := "content-type:" + contentType + "\n" +
		"host:" + endpoint.Host + "\n" +
		"x-amz-content-sha256:" + payloadHash + "\n" +
		"x-amz-date:" + amzDate + "\n"
	signedHeaders := "content-type;host;x-amz-content-sha256;x-amz-date"

	canonicalRequest := strings.Join([]string{
		http.MethodPut,
		objectPath,
		"", // sem query string
		canonicalHeaders,
		signedHeaders,
		payloadHash,
	}, "\n")

	scope := dateStamp + "/" + u.cfg.Region + "/s3/aws4_request"
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		scope,
		hex.EncodeToString(sha256Sum([]byte(canonicalRequest))),
	}, "\n")

	signingKey := hmacSHA256([]byte("AWS4"+u.cfg.SecretKey), dateStamp)
	signingKey = hmacSHA256(signingKey, u.cfg.Region)
	signingKey = hmacSHA256(signingKey, "s3")
	signingKey = hmacSHA256(signingKey, "aws4_request")
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	req.Header.Set("Authorization", fmt.Sprintf(
		"AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		u.cfg.AccessKey, scope, signedHeaders, signature,
	))

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: upload falhou (%v): %w", err, domain.ErrStorageUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("storage: HTTP %d: %s: %w", resp.StatusCode, string(msg), domain.ErrStorageUnavailable)
	}

	if u.cfg.PublicDomain != "" {
		return strings.TrimSuffix(u.cfg.PublicDomain, "/") + "/" + strings.TrimPrefix(key, "/"), nil
	}
	return endpoint.Scheme + "://" + endpoint.Host + objectPath, nil
}

func sha256Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
