package catalog

import "github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
