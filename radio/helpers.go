package radio

// maxStringLen is the size of the intermediate buffer ReadString
// drains through. Packets longer than this arrive truncated.
const maxStringLen = 255

// SignalStrength reports the signal strength of r's last received
// packet, or 0 when the adapter has no notion of signal strength.
func SignalStrength(r Radio) int {
	if s, ok := r.(SignalStrengther); ok {
		return s.SignalStrength()
	}
	return 0
}

// Sleep puts r into its low-power mode. Adapters without one succeed
// trivially: the radio simply stays awake.
func Sleep(r Radio) error {
	if p, ok := r.(PowerManager); ok {
		return p.Sleep()
	}
	return nil
}

// Wake returns r from its low-power mode. Adapters without one succeed
// trivially.
func Wake(r Radio) error {
	if p, ok := r.(PowerManager); ok {
		return p.Wake()
	}
	return nil
}

// SendString transmits s as one frame. It is exactly
// r.Send([]byte(s)); adapters never treat text specially.
func SendString(r Radio, s string) error {
	return r.Send([]byte(s))
}

// ReadString reads whatever is pending and returns it as a string.
// It drains through a fixed 255-byte buffer, so longer packets come
// back truncated; with nothing pending it returns "".
func ReadString(r Radio) (string, error) {
	var buf [maxStringLen]byte
	n, err := r.Read(buf[:])
	return string(buf[:n]), err
}
