package posestream

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadConfig(t *testing.T) {
	Convey("Given no environment overrides", t, func() {
		t.Setenv("OXY_POSED_ADDR", "")
		t.Setenv("OXY_POSED_SCENE", "")
		t.Setenv("OXY_POSED_MAX_CLIENTS", "")

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.Address, ShouldEqual, DefaultAddr)
		So(cfg.Scene, ShouldEqual, DefaultScene)
		So(cfg.MaxClients, ShouldEqual, DefaultMaxClients)
		So(cfg.PingInterval, ShouldEqual, DefaultPingInterval)
	})

	Convey("Given valid overrides", t, func() {
		t.Setenv("OXY_POSED_ADDR", " 127.0.0.1:9000 ")
		t.Setenv("OXY_POSED_SCENE", "moon")
		t.Setenv("OXY_POSED_MAX_CLIENTS", "0")
		t.Setenv("OXY_POSED_PING_INTERVAL", "5s")
		t.Setenv("OXY_POSED_ALLOWED_ORIGINS", "https://a.test, ,https://b.test")

		cfg, err := Load()
		So(err, ShouldBeNil)
		So(cfg.Address, ShouldEqual, "127.0.0.1:9000")
		So(cfg.Scene, ShouldEqual, "moon")
		So(cfg.MaxClients, ShouldEqual, 0)
		So(cfg.PingInterval, ShouldEqual, 5*time.Second)
		So(cfg.AllowedOrigins, ShouldResemble, []string{"https://a.test", "https://b.test"})
		So(len(cfg.ServerOptions()), ShouldEqual, 4)
	})

	Convey("Given invalid overrides", t, func() {
		t.Setenv("OXY_POSED_MAX_CLIENTS", "-1")
		t.Setenv("OXY_POSED_PING_INTERVAL", "soon")

		_, err := Load()
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "OXY_POSED_MAX_CLIENTS")
		So(err.Error(), ShouldContainSubstring, "OXY_POSED_PING_INTERVAL")
	})
}
