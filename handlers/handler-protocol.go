package handlers

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// -----------------------------
// Wire Protocol
// -----------------------------

// Packet framing shared with the swarm nodes. Every coordinator-bound
// packet is StartMarker + payload + EndMarker on UDP port Port.
const (
	Port        = 4210
	StartMarker = "+++"
	EndMarker   = "***"

	// MasterRole is the role token a node sends when it currently holds
	// the master role. Case-sensitive.
	MasterRole = "Master"

	// ResetNotice is the control payload broadcast on a physical reset.
	// It is never a report; Decode always rejects it.
	ResetNotice = "RESET_REQUESTED"
)

// Decode parses a raw datagram into a (swarm id, reading) pair.
//
// Accepted payloads:
//  1. +++Master,<swarm_id>,<reading>***
//  2. +++<swarm_id>,<reading>***
//
// Anything else (bad markers, invalid text, wrong field count, a role
// other than "Master", a non-numeric reading, or the reset notice) is
// foreign traffic and returns ok=false. Decode never fails loudly.
func Decode(payload []byte) (swarmID string, reading int32, ok bool) {
	if !utf8.Valid(payload) {
		return "", 0, false
	}
	s := string(payload)
	if !strings.HasPrefix(s, StartMarker) || !strings.HasSuffix(s, EndMarker) {
		return "", 0, false
	}
	inner := s[len(StartMarker) : len(s)-len(EndMarker)]

	// ignore reset packets
	if inner == ResetNotice {
		return "", 0, false
	}

	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 2:
		swarmID = parts[0]
	case 3:
		if parts[0] != MasterRole {
			return "", 0, false
		}
		swarmID = parts[1]
	default:
		return "", 0, false
	}

	v, err := strconv.ParseInt(parts[len(parts)-1], 10, 32)
	if err != nil {
		return "", 0, false
	}
	return swarmID, int32(v), true
}

// EncodeReset builds the reset notice broadcast to the swarm.
func EncodeReset() []byte {
	return []byte(StartMarker + ResetNotice + EndMarker)
}
