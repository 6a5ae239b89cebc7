package gateway

// ServiceStatus represents the provider-reported status of a service
type ServiceStatus string

const (
	StatusRunning ServiceStatus = "running"
	StatusStopped ServiceStatus = "stopped"
	StatusUnknown ServiceStatus = "unknown"
)

// Transitional reports whether the status is one of the provider's
// in-between states (installing, starting, stopping and friends). Anything
// that is not running, stopped or unknown is treated as transitional.
func (s ServiceStatus) Transitional() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusUnknown, "":
		return false
	}
	return true
}

// RemoteService is one entry of the provider's authoritative service list
type RemoteService struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Type           string        `json:"type"`
	ProductDisplay string        `json:"productdisplay"`
	Status         ServiceStatus `json:"status"`
	ExpireAt       int64         `json:"expire_at"`
	DaysLeft       int           `json:"daysleft"`
	Price          float64       `json:"price"`
	Locked         bool          `json:"locked"`
}

// DisplayName returns the best available human-readable name for the service
func (s *RemoteService) DisplayName() string {
	if s.ProductDisplay != "" {
		return s.ProductDisplay
	}
	if s.Name != "" {
		return s.Name
	}
	return "Unknown Service"
}

// NormalizedStatus maps empty or unexpected status values to "unknown"
func (s *RemoteService) NormalizedStatus() ServiceStatus {
	if s.Status == "" {
		return StatusUnknown
	}
	return s.Status
}

// NormalizedType maps an empty service type to "unknown"
func (s *RemoteService) NormalizedType() string {
	if s.Type == "" {
		return "unknown"
	}
	return s.Type
}

// ServiceDetail is the extended single-service payload
type ServiceDetail struct {
	Service ServiceInfo `json:"service"`
	Product ProductInfo `json:"product"`
}

// ServiceInfo contains contract-level fields of a service
type ServiceInfo struct {
	ID             string  `json:"id"`
	ProductDisplay string  `json:"productdisplay"`
	CreatedOn      int64   `json:"created_on"`
	ExpireAt       int64   `json:"expire_at"`
	DaysLeft       int     `json:"daysleft"`
	Price          float64 `json:"price"`
	Locked         bool    `json:"locked"`
}

// ProductInfo contains hardware and access fields of a service
type ProductInfo struct {
	Hostname          string `json:"hostname"`
	Cores             int    `json:"cores"`
	CPUType           string `json:"cputype"`
	MemoryMB          int    `json:"memory"`
	DiskMB            int    `json:"disk"`
	UplinkMbit        int    `json:"uplink"`
	AdditionalTraffic int    `json:"additionaltraffic"`
	Location          string `json:"location"`
	Node              string `json:"node"`
	OS                string `json:"os"`
	User              string `json:"user"`
	Password          string `json:"password"`
	Port              int    `json:"port"`
}

// StatusInfo is the response of the status endpoint
type StatusInfo struct {
	Status ServiceStatus `json:"status"`
}

// OSOption is an operating system available for reinstallation
type OSOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayname"`
	Type        string `json:"type"`
	Sort        int    `json:"sort"`
}

// IPv4Allocation is a routed IPv4 address with its network settings
type IPv4Allocation struct {
	IP      string `json:"ip"`
	Gateway string `json:"gw"`
	Netmask string `json:"netmask"`
	RDNS    string `json:"rdns,omitempty"`
}

// IPv6Allocation is a routed IPv6 subnet
type IPv6Allocation struct {
	Subnet  string `json:"subnet"`
	Gateway string `json:"gw"`
}

// IPAllocations groups the address assignments of a service
type IPAllocations struct {
	IPv4 []IPv4Allocation `json:"ipv4"`
	IPv6 []IPv6Allocation `json:"ipv6"`
}
