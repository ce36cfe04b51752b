package dto

import "github.com/BruksfildServices01/barbersoft-agenda/internal/validators"

// BotRequest é o corpo cru do endpoint conversacional. Todo campo de
// negócio aceita o nome em português e o alias em inglês; Normalize reduz
// os pares a um conjunto canônico antes de qualquer lógica rodar.
type BotRequest struct {
	Action       string `json:"action"`
	UnitID       uint   `json:"unit_id"`
	InstanceName string `json:"instance_name"`

	Nome       string `json:"nome"`
	ClientName string `json:"client_name"`

	Telefone    string `json:"telefone"`
	ClientPhone string `json:"client_phone"`

	Data     string `json:"data"`
	DateTime string `json:"datetime"`
	Date     string `json:"date"`
	Time     string `json:"time"`

	BarbeiroNome string `json:"barbeiro_nome"`
	Professional string `json:"professional"`

	Servico string `json:"servico"`
	Service string `json:"service"`

	DataNascimento string `json:"data_nascimento"`
	BirthDate      string `json:"birth_date"`

	Observacoes  string  `json:"observacoes"`
	Observations string  `json:"observations"`
	Notes        *string `json:"notes"`

	NovoTelefone string `json:"novo_telefone"`
	NewPhone     string `json:"new_phone"`

	NomeNovo string `json:"name"`

	Tags []string `json:"tags"`

	AppointmentID   uint `json:"appointment_id"`
	DurationMinutes int  `json:"duration_minutes"`
}

// BotInput é o conjunto canônico consumido pelos use cases.
type BotInput struct {
	Action       string
	UnitID       uint
	InstanceName string

	ClientName string
	// Telefone já normalizado para dígitos.
	ClientPhone string
	BirthDate   string
	Notes       string
	NotesSet    bool
	Tags        []string

	// DateTime carrega data/datetime; Date/Time os campos separados do
	// check_slot.
	DateTime string
	Date     string
	Time     string

	Professional string
	ServiceName  string

	NewName  string
	NewPhone string

	AppointmentID   uint
	DurationMinutes int
}

func (r *BotRequest) Normalize() BotInput {
	in := BotInput{
		Action:          r.Action,
		UnitID:          r.UnitID,
		InstanceName:    r.InstanceName,
		ClientName:      firstNonEmpty(r.Nome, r.ClientName),
		ClientPhone:     validators.NormalizePhone(firstNonEmpty(r.Telefone, r.ClientPhone)),
		BirthDate:       firstNonEmpty(r.DataNascimento, r.BirthDate),
		Tags:            r.Tags,
		DateTime:        firstNonEmpty(r.Data, r.DateTime, r.Date),
		Date:            firstNonEmpty(r.Date, r.Data, r.DateTime),
		Time:            r.Time,
		Professional:    firstNonEmpty(r.BarbeiroNome, r.Professional),
		ServiceName:     firstNonEmpty(r.Servico, r.Service),
		NewName:         r.NomeNovo,
		NewPhone:        validators.NormalizePhone(firstNonEmpty(r.NovoTelefone, r.NewPhone)),
		AppointmentID:   r.AppointmentID,
		DurationMinutes: r.DurationMinutes,
	}

	// notes distingue "não enviado" de "enviado vazio" (limpar observação).
	switch {
	case r.Notes != nil:
		in.Notes = *r.Notes
		in.NotesSet = true
	case r.Observacoes != "":
		in.Notes = r.Observacoes
		in.NotesSet = true
	case r.Observations != "":
		in.Notes = r.Observations
		in.NotesSet = true
	}

	return in
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
