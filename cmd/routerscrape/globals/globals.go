package globals

import (
	"context"

	"routerscrape/internal/config"
	"routerscrape/internal/router"
	"routerscrape/internal/telemetry"
)

type key struct{}

type Value struct {
	Config config.Config
	Client router.Client
	Tel    telemetry.API
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
