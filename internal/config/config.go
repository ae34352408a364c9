package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	_ "time/tzdata" // named refresh timezones must resolve on hosts without zoneinfo
)

var (
	ErrEmptyToken    = errors.New("error getting PR_TELEGRAM_TOKEN: variable not specified or contains an empty string")
	ErrInvalidRates  = errors.New("error parsing PR_CURRENCY_RATES: expected comma separated CODE:RATE pairs")
	ErrInvalidAdmins = errors.New("error parsing PR_ADMIN_IDS: expected comma separated Telegram user IDs")
)

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	StoragePath string // StoragePath is the sqlite database file.
	Tg          Telegram
	Refresh     Refresh
	Currency    Currency
	Quota       Quota
}

type Telegram struct {
	Token    string        // Token is an unique telgram bot token.
	Timeout  time.Duration // Timeout is a poller timeout duration.
	AdminIDs []int64       // AdminIDs may trigger manual refreshes and subscribe to run reports.
}

type Refresh struct {
	Schedule       string         // Schedule is a 5-field cron spec.
	Location       *time.Location // Location is the timezone the schedule is evaluated in.
	Concurrency    int
	ExtractTimeout time.Duration
	RunTimeout     time.Duration // RunTimeout bounds a whole run, 0 disables it.
	UserAgent      string
}

type Currency struct {
	Base     string
	Fallback string // Fallback is assumed when a page does not state its currency.
	Rates    map[string]decimal.Decimal
}

type Quota struct {
	DefaultLimit int
}

// defaultRates are INR per unit and only hold for the default INR base currency.
const defaultRates = "USD:83.2,EUR:90.1,GBP:105.4"

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("PR")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORAGE_PATH", "./storage/prices.db")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("ADMIN_IDS", "")
	viper.SetDefault("REFRESH_SCHEDULE", "0 0 * * *")
	viper.SetDefault("REFRESH_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("REFRESH_CONCURRENCY", 4)
	viper.SetDefault("EXTRACT_TIMEOUT", "30s")
	viper.SetDefault("RUN_TIMEOUT", "2h")
	viper.SetDefault("FALLBACK_CURRENCY", "INR")
	viper.SetDefault("BASE_CURRENCY", "INR")
	viper.SetDefault("CURRENCY_RATES", defaultRates)
	viper.SetDefault("DEFAULT_QUOTA", 10)
	viper.SetDefault("USER_AGENT", "Mozilla/5.0 (compatible; price-refresh/1.0)")

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	loc, err := time.LoadLocation(viper.GetString("REFRESH_TIMEZONE"))
	if err != nil {
		panic(fmt.Errorf("error loading PR_REFRESH_TIMEZONE: %w", err))
	}

	base := strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	admins, err := ParseAdminIDs(viper.GetString("ADMIN_IDS"))
	if err != nil {
		panic(err)
	}

	rates, err := ParseRates(viper.GetString("CURRENCY_RATES"))
	if err != nil {
		panic(err)
	}
	if _, ok := rates[base]; !ok {
		rates[base] = decimal.NewFromInt(1)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		Tg: Telegram{
			Token:    viper.GetString("TELEGRAM_TOKEN"),
			Timeout:  viper.GetDuration("TELEGRAM_TIMEOUT"),
			AdminIDs: admins,
		},
		Refresh: Refresh{
			Schedule:       viper.GetString("REFRESH_SCHEDULE"),
			Location:       loc,
			Concurrency:    viper.GetInt("REFRESH_CONCURRENCY"),
			ExtractTimeout: viper.GetDuration("EXTRACT_TIMEOUT"),
			RunTimeout:     viper.GetDuration("RUN_TIMEOUT"),
			UserAgent:      viper.GetString("USER_AGENT"),
		},
		Currency: Currency{
			Base:     base,
			Fallback: strings.ToUpper(viper.GetString("FALLBACK_CURRENCY")),
			Rates:    rates,
		},
		Quota: Quota{
			DefaultLimit: viper.GetInt("DEFAULT_QUOTA"),
		},
	}
}

// ParseRates parses "USD:83.2,EUR:90.1" into a code to rate map. Codes are upper-cased.
func ParseRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		code, value, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRates, pair)
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidRates, pair, err)
		}

		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}

	return rates, nil
}

// ParseAdminIDs parses "123,456" into Telegram user IDs.
func ParseAdminIDs(raw string) ([]int64, error) {
	var ids []int64

	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAdmins, field, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
