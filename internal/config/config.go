package config

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c DBConfig) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type StorageConfig struct {
	Driver    string
	SQLiteDSN string
}

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

func (c StorageConfig) Validate() error {
	switch c.Driver {
	case StoragePostgres, StorageSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}

type CommentsConfig struct {
	PageSize    int
	MaxPageSize int
	CacheTTL    time.Duration
}

// Normalized fills zero values with the defaults the API documents.
func (c CommentsConfig) Normalized() CommentsConfig {
	if c.PageSize <= 0 {
		c.PageSize = 2
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 50
	}
	if c.PageSize > c.MaxPageSize {
		c.PageSize = c.MaxPageSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}
	return c
}

type ClientConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	PostID      int64
	DateLayout  string
	LogFile     string
}

const DefaultDateLayout = "Jan 2, 2006, 3:04 PM"

func (c ClientConfig) Normalized() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.DateLayout == "" {
		c.DateLayout = DefaultDateLayout
	}
	return c
}
