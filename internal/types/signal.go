package types

type SignalType string

const (
	// SignalTypeEntry opens a long position in the threshold strategy
	SignalTypeEntry SignalType = "ENTRY"
	// SignalTypeExit closes the long position opened by SignalTypeEntry
	SignalTypeExit SignalType = "EXIT"
	// SignalTypeBuy opens a long position in the volatility regime strategy
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell closes the long position opened by SignalTypeBuy
	SignalTypeSell SignalType = "SELL"
)

// IsOpen reports whether the signal opens a position.
func (t SignalType) IsOpen() bool {
	return t == SignalTypeEntry || t == SignalTypeBuy
}

// IsClose reports whether the signal closes a position.
func (t SignalType) IsClose() bool {
	return t == SignalTypeExit || t == SignalTypeSell
}

type Signal struct {
	// Timestamp is the bar timestamp the signal was generated on
	Timestamp int64 `yaml:"timestamp" json:"timestamp"`
	// Type is the type of the signal
	Type SignalType `yaml:"type" json:"type"`
	// Price is the close price of the bar
	Price float64 `yaml:"price" json:"price"`
	// Reason is the reason for the signal
	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`
}
