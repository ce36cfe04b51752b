package timezone

import (
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
)

const DefaultTimezone = "America/Sao_Paulo"

// Offsets fixos por região. Nenhuma das regiões atendidas observa horário
// de verão, então offset fixo é seguro e dispensa tzdata em produção.
var offsetHours = map[string]int{
	"America/Sao_Paulo":   -3,
	"America/Fortaleza":   -3,
	"America/Recife":      -3,
	"America/Belem":       -3,
	"America/Cuiaba":      -4,
	"America/Manaus":      -4,
	"America/Porto_Velho": -4,
	"America/Boa_Vista":   -4,
	"America/Rio_Branco":  -5,
	"America/Noronha":     -2,
}

var (
	offsetSuffixRe = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)
	millisRe       = regexp.MustCompile(`\.\d{1,9}$`)
)

// Location resolve o identificador regional para uma zona de offset fixo.
// Timezone desconhecido cai no offset de Brasília.
func Location(tz string) *time.Location {
	hours, ok := offsetHours[tz]
	if !ok {
		hours = offsetHours[DefaultTimezone]
		tz = DefaultTimezone
	}
	return time.FixedZone(tz, hours*3600)
}

// IsKnown informa se o identificador está na tabela de regiões atendidas.
func IsKnown(tz string) bool {
	_, ok := offsetHours[tz]
	return ok
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// NormalizeLocalInput remove qualquer sufixo de zona ou milissegundos do
// datetime recebido. Entrada de UI e de bot é sempre hora de parede local;
// um "Z" acidental não pode virar interpretação UTC silenciosa.
func NormalizeLocalInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Z")
	s = offsetSuffixRe.ReplaceAllString(s, "")
	s = millisRe.ReplaceAllString(s, "")
	return strings.Replace(s, " ", "T", 1)
}

// ToUTC interpreta a string como hora local da unidade e devolve o instante
// UTC. Formatos aceitos: "2006-01-02T15:04:05", sem segundos, ou só a data.
func ToUTC(localDateTime, tz string) (time.Time, error) {
	normalized := NormalizeLocalInput(localDateTime)
	loc := Location(tz)

	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, normalized, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, httperr.ErrInvalidInput("invalid_datetime")
}

// DayBoundsUTC devolve [00:00:00, 23:59:59] locais do dia convertidos para
// UTC, para uso como faixa inclusiva ao listar agendamentos do dia.
func DayBoundsUTC(dateStr, tz string) (time.Time, time.Time, error) {
	dateOnly := DateOnly(dateStr)

	start, err := ToUTC(dateOnly+"T00:00:00", tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ToUTC(dateOnly+"T23:59:59", tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// DateOnly extrai o componente YYYY-MM-DD de uma string de data ou datetime.
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i > 0 {
		return s[:i]
	}
	return s
}
