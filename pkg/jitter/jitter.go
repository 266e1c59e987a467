// Package jitter размывает интервалы повторов случайной добавкой,
// чтобы параллельные клиенты не повторяли запросы синхронно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d со случайной добавкой в диапазоне [0, d*factor].
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff — пауза перед попыткой attempt (нумерация с нуля):
// base удваивается на каждую попытку, ограничивается max и размывается
// джиттером с коэффициентом factor.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < max; i++ {
		backoff *= 2
	}
	if backoff > max {
		backoff = max
	}
	return Duration(backoff, factor)
}
