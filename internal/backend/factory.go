package backend

import (
	"context"
	"fmt"
	"log/slog"

	"hushbudget/internal/amqp"
	"hushbudget/internal/kv"
	kvmemory "hushbudget/internal/kv/memory"
	kvsqlite "hushbudget/internal/kv/sqlite"
	"hushbudget/internal/ledger"
	"hushbudget/internal/prefs"
	"hushbudget/internal/services"
)

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend builds the slot store for the configured type, wires the
// ledger service on top of it, and attaches the optional AMQP client.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	store, err := kvsqlite.Open(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite slot store: %w", err)
	}

	result := f.assemble(config, store)
	result.Ledger.SetCleanup(store.Close)
	result.Cleanup = result.Ledger.Close

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", config.AMQPURL != "")
	return result, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	store := kvmemory.New()
	result := f.assemble(config, store)
	result.Cleanup = result.Ledger.Close

	f.logger.Info("Initialized memory backend")
	return result, nil
}

func (f *DefaultFactory) assemble(config Config, store kv.Store) *Result {
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without change events", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	ledgerStore := ledger.NewStore(store, ledger.WithCorruptionHook(func(err error) {
		f.logger.Warn("Absorbed persisted data corruption", "error", err)
	}))

	return &Result{
		Ledger: services.NewLedgerService(ledgerStore, amqpClient),
		Themes: prefs.NewThemeStore(store),
		KV:     store,
	}
}
