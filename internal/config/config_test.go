package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/config"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, 10*time.Minute)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, 10*time.Minute)
			convey.So(cfg.CacheSizeBytes(), convey.ShouldEqual, 32*1024*1024)
			convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, 8<<20)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the metric table should be the default one", func() {
			table, err := cfg.MetricTable()
			convey.So(err, convey.ShouldBeNil)
			convey.So(table.Len(), convey.ShouldEqual, metric.Defaults().Len())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"unknown log level", func(c *config.Config) { c.LogLevel = "loud" }},
			{"negative refresh", func(c *config.Config) { c.RefreshIntervalSeconds = -1 }},
			{"zero cache", func(c *config.Config) { c.CacheSizeMB = 0 }},
			{"cache too small for athlete cards", func(c *config.Config) { c.CacheSizeMB = config.MinCacheSizeMB - 1 }},
			{"zero ttl", func(c *config.Config) { c.CacheTTLSeconds = 0 }},
			{"zero upload", func(c *config.Config) { c.MaxUploadBytes = 0 }},
			{"half file paths", func(c *config.Config) { c.CurrentPath = "current.json" }},
			{"unknown metric", func(c *config.Config) {
				c.MetricOverrides = map[string]config.MetricOverride{"lap_time": {Column: "Vuelta"}}
			}},
		}

		for _, tc := range cases {
			cfg := config.New(context.Background())
			tc.mutate(cfg)

			convey.Convey("Then "+tc.name+" should be rejected", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given a metric override", t, func() {
		cfg := config.New(context.Background())
		cfg.MetricOverrides = map[string]config.MetricOverride{
			metric.BikeTime: {Column: "Bici Tiempo", Label: "Bici"},
		}

		convey.Convey("Then the table should carry it", func() {
			table, err := cfg.MetricTable()
			convey.So(err, convey.ShouldBeNil)
			def, ok := table.Lookup(metric.BikeTime)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(def.Column, convey.ShouldEqual, "Bici Tiempo")
			convey.So(def.Label, convey.ShouldEqual, "Bici")
		})
	})
}
