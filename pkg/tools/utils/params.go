package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetStringParam safely extracts a trimmed string parameter from the request
func GetStringParam(req mcp.CallToolRequest, key string, required bool) (string, error) {
	val, exists := req.Params.Arguments[key]
	if !exists || val == nil {
		if required {
			return "", fmt.Errorf("missing required parameter: '%s'", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("parameter '%s' must be a string", key)
	}

	str = strings.TrimSpace(str)
	if str == "" && required {
		return "", fmt.Errorf("parameter '%s' must not be empty", key)
	}

	return str, nil
}

// GetRequiredStringParam is a shorthand for GetStringParam with required=true
func GetRequiredStringParam(req mcp.CallToolRequest, key string) (string, error) {
	return GetStringParam(req, key, true)
}

// GetOptionalStringParam is a shorthand for GetStringParam with required=false
func GetOptionalStringParam(req mcp.CallToolRequest, key string) (string, error) {
	return GetStringParam(req, key, false)
}

// GetFloat64Param safely extracts a float64 parameter from the request.
// Numeric strings are accepted since some clients send every argument as text.
func GetFloat64Param(req mcp.CallToolRequest, key string, required bool) (float64, error) {
	val, exists := req.Params.Arguments[key]
	if !exists || val == nil {
		if required {
			return 0, fmt.Errorf("missing required parameter: '%s'", key)
		}
		return 0, nil
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("parameter '%s' must be a number", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parameter '%s' must be a number", key)
	}
}

// GetIntParam safely extracts an int parameter from a float64 in the request
func GetIntParam(req mcp.CallToolRequest, key string, required bool) (int, error) {
	f, err := GetFloat64Param(req, key, required)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("parameter '%s' is out of range", key)
	}

	return int(f), nil
}

// GetOptionalIntParam is a shorthand for GetIntParam with required=false
func GetOptionalIntParam(req mcp.CallToolRequest, key string) (int, error) {
	return GetIntParam(req, key, false)
}

// HandleParameterError returns a properly formatted error response for parameter validation errors
func HandleParameterError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}
