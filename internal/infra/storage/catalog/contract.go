package catalog

import "github.com/m04kA/SMC-MobileDiagnostics/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
