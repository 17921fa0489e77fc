package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ: Fire chỉ đẩy entry vào channel,
// một goroutine riêng format và ghi ra các writers
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters tạo async hook với nhiều writers (mặc định buffer 1000 entries)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không bao giờ block: hook đã đóng thì ghi trực tiếp, channel đầy thì bỏ entry
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		if isFiltered(entry) {
			return nil
		}
		data, err := format(entry)
		if err != nil {
			return err
		}
		for _, w := range h.writers {
			_, _ = w.Write(data)
		}
		return nil
	}

	select {
	case h.entries <- snapshot(entry):
	default:
	}
	return nil
}

// snapshot sao chép entry kèm Data riêng, FilterHook và format có thể sửa map mà không đụng entry gốc
func snapshot(entry *logrus.Entry) *logrus.Entry {
	cp := *entry
	cp.Data = make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		cp.Data[k] = v
	}
	return &cp
}

func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()

			if isFiltered(entry) {
				return
			}
			data, err := format(entry)
			if err != nil {
				return
			}
			for _, w := range h.writers {
				_, _ = w.Write(data)
			}
		}()
	}
}

func isFiltered(entry *logrus.Entry) bool {
	filtered, ok := entry.Data[filteredKey].(bool)
	return ok && filtered
}

func format(entry *logrus.Entry) ([]byte, error) {
	if _, ok := entry.Data[filteredKey]; ok {
		delete(entry.Data, filteredKey)
	}
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
