package logger

import (
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// Notifier is the subset of the Honeybadger client used by the hook.
type Notifier interface {
	Notify(err interface{}, extra ...interface{}) (string, error)
}

// HoneybadgerHook forwards error-level log entries to Honeybadger.
type HoneybadgerHook struct {
	client Notifier
}

// NewHoneybadgerHook creates a hook reporting through client.
func NewHoneybadgerHook(client Notifier) *HoneybadgerHook {
	return &HoneybadgerHook{client: client}
}

// Levels implements logrus.Hook.
func (h *HoneybadgerHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire implements logrus.Hook. The entry's error field, when present, is the
// reported error and the message goes into the context.
func (h *HoneybadgerHook) Fire(entry *logrus.Entry) error {
	ctx := honeybadger.Context{}
	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			continue
		}
		ctx[k] = v
	}

	var notice interface{} = entry.Message
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		notice = err
		ctx["message"] = entry.Message
	}

	tags := honeybadger.Tags{entry.Level.String()}
	if component, ok := entry.Data["component"].(string); ok {
		tags = append(tags, component)
	}

	_, err := h.client.Notify(notice, ctx, tags)
	return err
}

// EnableHoneybadger installs the hook on Logger when apiKey is set.
// The returned func flushes pending notices and must be called before exit.
func EnableHoneybadger(apiKey, env string) func() {
	if apiKey == "" {
		Logger.Debug("Honeybadger is not active. To enable error reporting, set the HONEYBADGER_API_KEY environment variable.")
		return func() {}
	}

	client := honeybadger.New(honeybadger.Configuration{
		APIKey: apiKey,
		Env:    env,
	})
	Logger.AddHook(NewHoneybadgerHook(client))
	Logger.Debug("Honeybadger error reporting is enabled.")

	return client.Flush
}
