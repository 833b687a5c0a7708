package report

import "errors"

var (
	// ErrReportNotFound возвращается, когда отчет не найден
	ErrReportNotFound = errors.New("report.repository: report not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("report.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("report.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("report.repository: failed to scan row")

	// ErrEncodeFindings возвращается при ошибке сериализации находок
	ErrEncodeFindings = errors.New("report.repository: failed to encode findings")
)
