package validators

import "strings"

// NormalizePhone reduz o telefone a dígitos. "(11) 98765-4321" e
// "11987654321" viram a mesma chave de busca.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneForMessaging prefixa o DDI 55 quando ausente, formato exigido pelo
// envio via canal de mensagens.
func PhoneForMessaging(phone string) string {
	digits := NormalizePhone(phone)
	if !strings.HasPrefix(digits, "55") && len(digits) <= 11 {
		return "55" + digits
	}
	return digits
}

func IsPlausiblePhone(phone string) bool {
	digits := NormalizePhone(phone)
	return len(digits) >= 8 && len(digits) <= 13
}
