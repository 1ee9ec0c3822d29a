package convert

import (
	"strconv"

	"golang.org/x/xerrors"

	"fwsim/constant"
)

var ErrInvalidNumber = xerrors.New("invalid number")

// StringToPort parses a decimal port number in [constant.MinPort, constant.MaxPort].
func StringToPort(s string) (uint32, error) {
	port, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, xerrors.Errorf("port %q is not a number: %w", s, ErrInvalidNumber)
	}
	if uint32(port) > constant.MaxPort {
		return 0, xerrors.Errorf("port %d is out of range %d-%d: %w", port, constant.MinPort, constant.MaxPort, ErrInvalidNumber)
	}
	return uint32(port), nil
}

// StringToIndex parses a non-negative rule index.
func StringToIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, xerrors.Errorf("index %q is not a non-negative number: %w", s, ErrInvalidNumber)
	}
	return index, nil
}
