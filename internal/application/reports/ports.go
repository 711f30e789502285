package reports

import (
	"context"
	"time"
)

// ReportCache cache de lecturas agregadas (tableros). Get devuelve el valor y
// si hubo acierto; una implementación nula siempre falla el acierto.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Invalidate borra las entradas cuyo prefijo coincida.
	Invalidate(ctx context.Context, prefix string)
}
