package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// SortKey represents a ticket table sort column.
	SortKey string

	// ColorKey identifies the display color of a chart segment.
	ColorKey string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// Ticket statuses as reported by the helpdesk.
const (
	StatusOpen       = "Abierto"
	StatusClosed     = "Cerrado"
	StatusResolved   = "Resuelto"
	StatusCancelled  = "Cancelado"
	StatusInProgress = "En Progreso"
	StatusPending    = "Pendiente"
	StatusOnHold     = "En Espera"
	StatusEscalated  = "Escalado"
	StatusReview     = "Revisión"
	StatusBlocked    = "Bloqueado"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All ticket sort keys supported.
const (
	SortByNumber   SortKey = "no" // default
	SortByDate     SortKey = "date"
	SortByStatus   SortKey = "status"
	SortByTech     SortKey = "tech"
	SortByClient   SortKey = "client"
	SortByLocation SortKey = "location"
	SortBySubject  SortKey = "subject"
)

// Chart segment color keys, matching the palette of the original dashboard.
const (
	ColorResolved    ColorKey = "#000000"
	ColorAssigned    ColorKey = "#8B0000"
	ColorSurveyed    ColorKey = "#808080"
	ColorNotSurveyed ColorKey = "#E0E0E0"
	ColorOpen        ColorKey = "#1E90FF"
	ColorClosed      ColorKey = "#40A315"
	ColorCancelled   ColorKey = "#FFC300"
	ColorPending     ColorKey = "#FF0000"
	ColorNeutral     ColorKey = "#0036FF"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSortKeys lists all valid ticket sort keys.
var ValidSortKeys = map[SortKey]struct{}{
	SortByNumber:   {},
	SortByDate:     {},
	SortByStatus:   {},
	SortByTech:     {},
	SortByClient:   {},
	SortByLocation: {},
	SortBySubject:  {},
}
