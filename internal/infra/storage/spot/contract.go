package spot

import "github.com/m04kA/GalliPark-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
