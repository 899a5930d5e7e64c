// Package ai implementa o colaborador de extração de notas fiscais sobre a
// API REST do Google Gemini. Usa apenas net/http da biblioteca padrão para
// não adicionar dependências ao cliente.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
)

// Verificação em tempo de compilação de que GeminiService implementa o porto.
var _ receipts.Extractor = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// systemPrompt define o papel do modelo e o formato de saída.
	// response_mime_type=application/json obriga o Gemini a devolver JSON
	// puro, sem blocos de markdown para limpar.
	systemPrompt = `Você é um assistente especialista em contabilidade e OCR de Notas Fiscais brasileiras.
Analise a imagem ou PDF e devolva APENAS um objeto JSON com a estrutura exata:
{
  "merchant_name": "<nome do estabelecimento>",
  "confidence_score": <número decimal entre 0.0 e 1.0>,
  "installments": [{"number": "<n>", "date": "YYYY-MM-DD", "amount": <número>}],
  "ocr": {"raw_text": "<texto bruto>", "cnpj_detected": "<CNPJ>", "date_detected": "YYYY-MM-DD", "total_detected": <número>},
  "summary": {"cnpj": "<CNPJ>", "date": "YYYY-MM-DD", "total": <número>, "items_count": <inteiro>, "category": "<categoria contábil>"}
}

ATENÇÃO AO PARCELAMENTO:
- Procure explicitamente por tabelas de "Fatura", "Duplicatas", "Vencimentos" ou "Parcelas".
- Se encontrar, extraia cada parcela com número, data de vencimento e valor no array installments.

REGRAS:
1. Extraia dados brutos para o objeto ocr.
2. Gere um resumo limpo para o objeto summary.
3. Sugira uma categoria contábil em português.
4. Identifique o CNPJ do fornecedor.
5. Calcule um score de confiança da extração.`
)

// GeminiService adaptador do porto Extractor sobre a API do Gemini.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService constrói o adaptador. model costuma ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // timeout de rede; o caller também impõe o dele
		},
	}
}

// ── Estruturas internas da API do Gemini ─────────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobPart `json:"inline_data,omitempty"`
}

type geminiBlobPart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// extractionPayload é o JSON que esperamos receber do modelo.
type extractionPayload struct {
	MerchantName    string               `json:"merchant_name"`
	ConfidenceScore float64              `json:"confidence_score"`
	Installments    []dto.InstallmentDTO `json:"installments"`
	OCR             dto.OCRDataDTO       `json:"ocr"`
	Summary         dto.SummaryDTO       `json:"summary"`
}

// ── Implementação do porto ───────────────────────────────────────────────────

// Analyze envia o documento para o Gemini e devolve o payload de extração.
// Toda falha embrulha domain.ErrExtractionFailed; não há retry aqui — a
// política fica com o orquestrador chamador.
func (s *GeminiService) Analyze(ctx context.Context, document []byte, mediaType string) (*dto.ExtractionResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("gemini: GEMINI_API_KEY não configurado: %w", domain.ErrExtractionFailed)
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{InlineData: &geminiBlobPart{MIMEType: mediaType, Data: base64.StdEncoding.EncodeToString(document)}},
					{Text: "Analise esta nota fiscal. Se houver tabela de parcelas/vencimentos, extraia no array 'installments'."},
				},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2, // baixa temperatura para extração determinista
			MaxOutputTokens:  2048,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gemini: serializar request: %w", domain.ErrExtractionFailed)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: criar request: %w", domain.ErrExtractionFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("gemini: timeout ou cancelamento (%v): %w", ctx.Err(), domain.ErrExtractionFailed)
		}
		return nil, fmt.Errorf("gemini: chamada HTTP falhou (%v): %w", err, domain.ErrExtractionFailed)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("gemini: ler resposta: %w", domain.ErrExtractionFailed)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("gemini: erro %d: %s: %w", errResp.Error.Code, errResp.Error.Message, domain.ErrExtractionFailed)
		}
		return nil, fmt.Errorf("gemini: HTTP %d: %w", resp.StatusCode, domain.ErrExtractionFailed)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("gemini: deserializar resposta: %w", domain.ErrExtractionFailed)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: resposta vazia: %w", domain.ErrExtractionFailed)
	}

	rawJSON := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)

	var extraction extractionPayload
	if err := json.Unmarshal([]byte(rawJSON), &extraction); err != nil {
		return nil, fmt.Errorf("gemini: resposta do modelo não é JSON válido (%s): %w", rawJSON, domain.ErrExtractionFailed)
	}

	// Clamp do score ao intervalo [0, 1]; dali em diante ele atravessa o
	// sistema sem alteração.
	confidence := extraction.ConfidenceScore
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return &dto.ExtractionResult{
		MerchantName:    extraction.MerchantName,
		OCR:             extraction.OCR,
		Summary:         extraction.Summary,
		Installments:    extraction.Installments,
		ConfidenceScore: confidence,
	}, nil
}
