package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adanyl0v/notebook-todo/internal/repository/memory"
	"github.com/adanyl0v/notebook-todo/internal/repository/mongo"
	"github.com/adanyl0v/notebook-todo/internal/repository/postgres"
	"github.com/adanyl0v/notebook-todo/internal/repository/sqlstore"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

type Params struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Kind returns the name of the store addressed by the URI, or an
// empty string if the scheme is unknown.
func Kind(uri string) string {
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return "mongo"
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(uri, "sqlite:"):
		return "sqlite"
	case strings.HasPrefix(uri, "mysql://"):
		return "mysql"
	case strings.HasPrefix(uri, "memory://"):
		return "memory"
	default:
		return ""
	}
}

// Open connects to the task store addressed by the URI scheme.
func Open(ctx context.Context, params Params) (services.TaskRepository, error) {
	if params.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.ConnectTimeout)
		defer cancel()
	}

	var (
		repo services.TaskRepository
		err  error
	)
	switch Kind(params.URI) {
	case "mongo":
		repo, err = mongo.Connect(ctx, params.URI, params.Database, params.ConnectTimeout)
	case "postgres":
		repo, err = postgres.Connect(ctx, params.URI, params.ConnectTimeout)
	case "sqlite":
		repo, err = sqlstore.Open(ctx, sqlstore.SQLite, sqliteDSN(params.URI))
	case "mysql":
		repo, err = sqlstore.Open(ctx, sqlstore.MySQL, strings.TrimPrefix(params.URI, "mysql://"))
	case "memory":
		repo = memory.New()
	default:
		return nil, fmt.Errorf("unsupported store uri scheme: %q", params.URI)
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// sqliteDSN accepts both sqlite://path/to/file.db and sqlite::memory:.
func sqliteDSN(uri string) string {
	if dsn, ok := strings.CutPrefix(uri, "sqlite://"); ok {
		return dsn
	}
	return strings.TrimPrefix(uri, "sqlite:")
}
