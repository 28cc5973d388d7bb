package models

import "errors"

// ErrSchema reports a payload that decoded but does not describe valid gift lists
var ErrSchema = errors.New("malformed gift list payload")
