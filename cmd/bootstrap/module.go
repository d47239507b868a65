package bootstrap

import (
	"parking-reservation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything below the HTTP layer; the admin CLI runs on it.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	DBModule,
	components.UseCaseModule,
	JWTModule,
)

var Module = fx.Options(
	CoreModule,
	components.HandlerModule,
)
