package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/config"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.CacheSizeMB, convey.ShouldEqual, 32)
				convey.So(cfg.CurrentPath, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ATHLOS_ADDR", ":8080")
			_ = os.Setenv("ATHLOS_CACHE_SIZE_MB", "64")
			_ = os.Setenv("ATHLOS_REFRESH_INTERVAL_SECONDS", "0")
			_ = os.Setenv("ATHLOS_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CacheSizeMB, convey.ShouldEqual, 64)
				convey.So(cfg.RefreshIntervalSeconds, convey.ShouldEqual, 0)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 600)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := createTempConfigFile(`
addr: ":9090"
current_path: /data/current.json
history_path: /data/history.json
cache_ttl_seconds: 120
name_columns: [Atleta]
metric_overrides:
  run_time:
    column: Trote Tiempo
    label: Trote
`)
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("ATHLOS_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CurrentPath, convey.ShouldEqual, "/data/current.json")
				convey.So(cfg.HistoryPath, convey.ShouldEqual, "/data/history.json")
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 120)
				convey.So(cfg.NameColumns, convey.ShouldResemble, []string{"Atleta"})
				convey.So(cfg.MetricOverrides[metric.RunTime].Column, convey.ShouldEqual, "Trote Tiempo")

				table, err := cfg.MetricTable()
				convey.So(err, convey.ShouldBeNil)
				def, _ := table.Lookup(metric.RunTime)
				convey.So(def.Label, convey.ShouldEqual, "Trote")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile("addr: \":9090\"\ncache_size_mb: 16\n")
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("ATHLOS_CONFIG", path)
			_ = os.Setenv("ATHLOS_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CacheSizeMB, convey.ShouldEqual, 16)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("ATHLOS_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ATHLOS_CONFIG", "/non/existent/file.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("ATHLOS_ADDR", "")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ATHLOS_CACHE_SIZE_MB", "plenty")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with only one workbook path", func() {
			_ = os.Setenv("ATHLOS_CURRENT_PATH", "/data/current.json")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "ATHLOS_") {
			_ = os.Unsetenv(name)
		}
	}
}

func createTempConfigFile(content string) string {
	dir, err := os.MkdirTemp("", "athlos-config-*")
	if err != nil {
		panic(err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}
