package errors

import "fmt"

// Configuration Errors
func ConfigNotFound(path string) *PanelError {
	return NewWithDetails(ErrConfigNotFound, "Configuration file not found", fmt.Sprintf("Path: %s", path))
}

func ConfigInvalid(reason string) *PanelError {
	return NewWithDetails(ErrConfigInvalid, "Invalid configuration", reason)
}

func ConfigParseError(cause error) *PanelError {
	return Wrap(ErrConfigParse, "Failed to parse configuration", cause)
}

func ConfigValidationError(field, reason string) *PanelError {
	return NewWithDetails(ErrConfigValidation, "Configuration validation failed",
		fmt.Sprintf("Field: %s, Reason: %s", field, reason))
}

// Gateway Errors

// GatewayNetworkError reports a failure to reach the provider API at all.
func GatewayNetworkError(endpoint string, cause error) *PanelError {
	return WrapWithDetails(ErrGatewayNetwork, "Provider API unreachable",
		fmt.Sprintf("Endpoint: %s", endpoint), cause)
}

// GatewayHTTPError reports a non-2xx provider response. The provider's error
// body is carried in the details so the UI can surface it verbatim.
func GatewayHTTPError(status int, body string) *PanelError {
	e := NewWithDetails(ErrGatewayHTTP, "Provider API request failed", body)
	return e.WithContext("provider_status", status)
}

// GatewayDecodeError reports a malformed provider payload rejected at the
// gateway boundary.
func GatewayDecodeError(endpoint string, cause error) *PanelError {
	return WrapWithDetails(ErrGatewayDecode, "Malformed provider response",
		fmt.Sprintf("Endpoint: %s", endpoint), cause)
}

// Service and Action Errors
func ServiceNotFound(id string) *PanelError {
	return NewWithDetails(ErrServiceNotFound, "Service not found", fmt.Sprintf("Service: %s", id))
}

func ActionAlreadyPending(serviceID, action string) *PanelError {
	return NewWithDetails(ErrActionPending, "An action is already pending for this service",
		fmt.Sprintf("Service: %s, Pending: %s", serviceID, action))
}

func ActionFailed(serviceID, action string, cause error) *PanelError {
	return WrapWithDetails(ErrActionFailed, "Service action failed",
		fmt.Sprintf("Service: %s, Action: %s", serviceID, action), cause)
}

// Credential Errors
func APIKeyRequired() *PanelError {
	return New(ErrAPIKeyRequired, "API key not configured")
}

func AuthenticationFailed(reason string) *PanelError {
	return NewWithDetails(ErrAuthFailed, "Authentication failed", reason)
}

// Database Errors
func DatabaseConnectionError(cause error) *PanelError {
	return Wrap(ErrDatabaseConnection, "Database connection failed", cause)
}

func DatabaseQueryError(query string, cause error) *PanelError {
	return WrapWithDetails(ErrDatabaseQuery, "Database query failed",
		fmt.Sprintf("Query: %s", query), cause)
}

func DatabaseMigrationError(version string, cause error) *PanelError {
	return WrapWithDetails(ErrDatabaseMigration, "Database migration failed",
		fmt.Sprintf("Version: %s", version), cause)
}

// PersistenceError reports a cache read/write failure. These degrade to
// remote-only operation and never abort a reconciliation batch.
func PersistenceError(operation string, cause error) *PanelError {
	return WrapWithDetails(ErrPersistence, "Cache persistence failed",
		fmt.Sprintf("Operation: %s", operation), cause)
}

// Validation Errors
func ValidationFailed(field, value, reason string) *PanelError {
	return NewWithDetails(ErrValidationFailed, "Validation failed",
		fmt.Sprintf("Field: %s, Value: %s, Reason: %s", field, value, reason))
}

func InvalidInput(input, expected string) *PanelError {
	return NewWithDetails(ErrInvalidInput, "Invalid input",
		fmt.Sprintf("Input: %s, Expected: %s", input, expected))
}

// Internal Errors
func InternalError(details string, cause error) *PanelError {
	if cause != nil {
		return WrapWithDetails(ErrInternal, "Internal error", details, cause)
	}
	return NewWithDetails(ErrInternal, "Internal error", details)
}

func TimeoutError(operation string, duration interface{}) *PanelError {
	return NewWithDetails(ErrTimeout, "Operation timed out",
		fmt.Sprintf("Operation: %s, Duration: %v", operation, duration))
}
