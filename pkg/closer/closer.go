// Package closer собирает функции освобождения ресурсов и запускает их
// при остановке приложения в порядке, обратном регистрации.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Func — функция закрытия одного ресурса.
type Func func(ctx context.Context) error

// Closer хранит зарегистрированные функции закрытия.
// Close можно вызывать из нескольких горутин, отработает он один раз.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	hooks         []Func
	forcedTimeout time.Duration
}

// NewCloser создаёт Closer. forcedTimeout ограничивает принудительную
// фазу закрытия, когда контекст Close истёк раньше времени.
func NewCloser(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = 2 * time.Second
	}
	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	c.hooks = append(c.hooks, f)
	c.mu.Unlock()
}

// Close запускает функции закрытия в порядке LIFO. Если контекст
// отменяется до завершения, оставшиеся функции добиваются параллельно
// с собственным таймаутом forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		hooks := c.hooks
		c.mu.Unlock()

		var msgs []string
		for i := len(hooks) - 1; i >= 0; i-- {
			done := make(chan error, 1)
			go func(f Func) {
				done <- f(ctx)
			}(hooks[i])

			select {
			case hookErr := <-done:
				if hookErr != nil {
					msgs = append(msgs, fmt.Sprintf("[!] %v", hookErr))
				}
			case <-ctx.Done():
				msgs = append(msgs, c.forceClose(hooks[:i+1])...)
				err = fmt.Errorf(
					"shutdown interrupted after %d/%d funcs:\n%s",
					len(hooks)-1-i, len(hooks), strings.Join(msgs, "\n"),
				)
				return
			}
		}

		if len(msgs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(msgs, "\n"))
		}
	})

	return err
}

// forceClose параллельно запускает не успевшие закрыться функции.
func (c *Closer) forceClose(hooks []Func) []string {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		msgs []string
	)
	for _, f := range hooks {
		wg.Add(1)
		go func(f Func) {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				msgs = append(msgs, fmt.Sprintf("[FORCED] %v", err))
				mu.Unlock()
			}
		}(f)
	}
	wg.Wait()

	return msgs
}
