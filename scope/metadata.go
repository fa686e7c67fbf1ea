package scope

import (
	"encoding/json"
	"fmt"

	"github.com/pellucid-io/scopes/variant"
)

// ConnectivityStatus reports the device's internet connectivity at query
// time.
type ConnectivityStatus int

const (
	ConnectivityStatusUnknown      ConnectivityStatus = 0
	ConnectivityStatusConnected    ConnectivityStatus = 1
	ConnectivityStatusDisconnected ConnectivityStatus = 2
)

// Location is the position attached to a search request.
type Location struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Altitude           float64 `json:"altitude"`
	AreaCode           string  `json:"area_code"`
	City               string  `json:"city"`
	CountryCode        string  `json:"country_code"`
	CountryName        string  `json:"country_name"`
	HorizontalAccuracy float64 `json:"horizontal_accuracy"`
	VerticalAccuracy   float64 `json:"vertical_accuracy"`
	RegionCode         string  `json:"region_code"`
	RegionName         string  `json:"region_name"`
	ZipPostalCode      string  `json:"zip_postal_code"`
}

// marshalFloat renders with a decimal point so whole coordinates like 1.0
// don't arrive as integers on the consumer side.
type marshalFloat float64

func (n marshalFloat) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%f", float64(n))), nil
}

// locationMarshal mirrors Location with float fields forced through
// marshalFloat. Not exported.
type locationMarshal struct {
	Latitude           marshalFloat `json:"latitude"`
	Longitude          marshalFloat `json:"longitude"`
	Altitude           marshalFloat `json:"altitude"`
	AreaCode           string       `json:"area_code"`
	City               string       `json:"city"`
	CountryCode        string       `json:"country_code"`
	CountryName        string       `json:"country_name"`
	HorizontalAccuracy marshalFloat `json:"horizontal_accuracy"`
	VerticalAccuracy   marshalFloat `json:"vertical_accuracy"`
	RegionCode         string       `json:"region_code"`
	RegionName         string       `json:"region_name"`
	ZipPostalCode      string       `json:"zip_postal_code"`
}

// MarshalJSON renders the location with decimal-pointed floats.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(locationMarshal{
		marshalFloat(l.Latitude),
		marshalFloat(l.Longitude),
		marshalFloat(l.Altitude),
		l.AreaCode,
		l.City,
		l.CountryCode,
		l.CountryName,
		marshalFloat(l.HorizontalAccuracy),
		marshalFloat(l.VerticalAccuracy),
		l.RegionCode,
		l.RegionName,
		l.ZipPostalCode,
	})
}

// queryMetadata carries the fields shared by search and preview requests.
type queryMetadata struct {
	locale       string
	formFactor   string
	connectivity ConnectivityStatus
}

// Locale returns the expected locale for the request.
func (m *queryMetadata) Locale() string { return m.locale }

// FormFactor returns the requesting device's form factor.
func (m *queryMetadata) FormFactor() string { return m.formFactor }

// SetInternetConnectivity indicates the internet connectivity status.
func (m *queryMetadata) SetInternetConnectivity(status ConnectivityStatus) {
	m.connectivity = status
}

// InternetConnectivity gets the internet connectivity status.
func (m *queryMetadata) InternetConnectivity() ConnectivityStatus {
	return m.connectivity
}

// SearchMetadata holds additional metadata about a search request.
type SearchMetadata struct {
	queryMetadata
	cardinality int
	location    *Location
}

// NewSearchMetadata creates search metadata. Cardinality 0 means the
// consumer did not cap the result count.
func NewSearchMetadata(cardinality int, locale, formFactor string) *SearchMetadata {
	return &SearchMetadata{
		queryMetadata: queryMetadata{locale: locale, formFactor: formFactor},
		cardinality:   cardinality,
	}
}

// Cardinality returns the desired number of results (0 = unlimited).
func (m *SearchMetadata) Cardinality() int { return m.cardinality }

// Location returns the request location, or nil if none was attached.
func (m *SearchMetadata) Location() *Location { return m.location }

// SetLocation attaches a location to the request.
func (m *SearchMetadata) SetLocation(l *Location) { m.location = l }

// ActionMetadata holds additional metadata about a preview request or
// result activation.
type ActionMetadata struct {
	queryMetadata
	scopeData variant.Value
	hints     map[string]variant.Value
}

// NewActionMetadata creates action metadata.
func NewActionMetadata(locale, formFactor string) *ActionMetadata {
	return &ActionMetadata{
		queryMetadata: queryMetadata{locale: locale, formFactor: formFactor},
		hints:         make(map[string]variant.Value),
	}
}

// ScopeData decodes the stored scope data into v, following
// json.Unmarshal rules.
func (m *ActionMetadata) ScopeData(v any) error {
	data, err := json.Marshal(m.scopeData)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SetScopeData attaches arbitrary data to this metadata. Scope data is
// round-tripped to the shell and handed back on the next action.
func (m *ActionMetadata) SetScopeData(v any) error {
	val, err := variant.FromAny(v)
	if err != nil {
		return err
	}
	m.scopeData = val
	return nil
}

// SetHint sets a rendering hint.
func (m *ActionMetadata) SetHint(key string, value any) error {
	val, err := variant.FromAny(value)
	if err != nil {
		return err
	}
	m.hints[key] = val
	return nil
}

// Hint returns one hint.
func (m *ActionMetadata) Hint(key string) (variant.Value, bool) {
	v, ok := m.hints[key]
	return v, ok
}

// Hints returns all hints. The returned map is live.
func (m *ActionMetadata) Hints() map[string]variant.Value { return m.hints }
