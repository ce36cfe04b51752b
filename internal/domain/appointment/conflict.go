package appointment

import "time"

// Overlaps aplica o teste de sobreposição de intervalos meio-abertos
// [start, end): encostar não conflita, então agendamentos consecutivos
// (end == start do próximo) são legais.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
