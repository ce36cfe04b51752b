package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/validators"
)

// ConfirmationInput descreve a mensagem de confirmação enviada ao cliente
// após um agendamento criado pelo canal conversacional.
type ConfirmationInput struct {
	InstanceName string
	APIKey       string
	Phone        string

	ClientName  string
	ServiceName string
	BarberName  string
	Price       float64

	// Início já no relógio local da unidade, para exibição.
	StartLocal time.Time
}

// EvolutionSender envia texto pela Evolution API. Todo envio é melhor
// esforço: sem retry, falha só vira log, nunca afeta a resposta principal.
type EvolutionSender struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewEvolutionSender(baseURL string, logger *zap.Logger) *EvolutionSender {
	return &EvolutionSender{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// SendConfirmationAsync dispara o envio e retorna imediatamente.
func (s *EvolutionSender) SendConfirmationAsync(in ConfirmationInput) {
	if in.Phone == "" || in.InstanceName == "" || in.APIKey == "" {
		s.logger.Debug("confirmation skipped, missing phone or instance credentials")
		return
	}

	go func() {
		if err := s.send(in); err != nil {
			s.logger.Warn("confirmation message failed",
				zap.String("instance", in.InstanceName),
				zap.Error(err),
			)
		}
	}()
}

func (s *EvolutionSender) send(in ConfirmationInput) error {
	text := fmt.Sprintf(
		"✅ *Agendamento Confirmado!*\n\n"+
			"Olá %s!\n\n"+
			"Seu agendamento foi realizado com sucesso:\n\n"+
			"📅 *Data/Hora:* %s\n"+
			"✂️ *Serviço:* %s\n"+
			"💈 *Profissional:* %s\n"+
			"💰 *Valor:* R$ %.2f\n\n"+
			"Até lá! 💈",
		in.ClientName,
		in.StartLocal.Format("02/01/2006 15:04"),
		in.ServiceName,
		in.BarberName,
		in.Price,
	)

	body, err := json.Marshal(map[string]string{
		"number": validators.PhoneForMessaging(in.Phone),
		"text":   text,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/message/sendText/%s", s.baseURL, in.InstanceName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", in.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("evolution api status %d", resp.StatusCode)
	}

	s.logger.Info("confirmation message sent",
		zap.String("instance", in.InstanceName),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
