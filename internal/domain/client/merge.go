package client

import "github.com/BruksfildServices01/barbersoft-agenda/internal/models"

// MergeInformative aplica sobre o cadastro existente apenas os campos que
// trazem informação nova: data de nascimento só preenche vazio, observação
// só quando difere da guardada, tags entram por união sem duplicar.
// Nunca sobrescreve valor preenchido com branco. Retorna se algo mudou.
func MergeInformative(existing *models.Client, birthDate, notes string, tags []string) bool {
	changed := false

	if birthDate != "" && existing.BirthDate == "" {
		existing.BirthDate = birthDate
		changed = true
	}

	if notes != "" && notes != existing.Notes {
		existing.Notes = notes
		changed = true
	}

	if merged, grew := unionTags(existing.Tags, tags); grew {
		existing.Tags = merged
		changed = true
	}

	return changed
}

func unionTags(existing, incoming []string) ([]string, bool) {
	if len(incoming) == 0 {
		return existing, false
	}

	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t] = struct{}{}
	}

	merged := existing
	grew := false
	for _, t := range incoming {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
		grew = true
	}
	return merged, grew
}
