package protocol

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewTouchMessage creates a raw pointer event message
func NewTouchMessage(action int, x1, y1, x2, y2 float64) (*Message, error) {
	return NewMessage(TypeTouch, TouchData{
		Action: action,
		X1:     x1,
		Y1:     y1,
		X2:     x2,
		Y2:     y2,
	})
}

// NewViewportMessage creates a viewport geometry message
func NewViewportMessage(width, height, scale, dpi float64) (*Message, error) {
	return NewMessage(TypeViewport, ViewportData{
		Width:  width,
		Height: height,
		Scale:  scale,
		DPI:    dpi,
	})
}

// NewViewStateMessage creates a camera state frame
func NewViewStateMessage(state ViewStateData) (*Message, error) {
	return NewMessage(TypeViewState, state)
}

// NewClickMessage creates a recognized-click message
func NewClickMessage(kind string, x, y float64) (*Message, error) {
	return NewMessage(TypeClick, ClickData{Kind: kind, X: x, Y: y})
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{ID: id})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:     id,
		PingTS: pingTS,
		PongTS: pongTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetTouchData extracts a pointer event from a message
func (m *Message) GetTouchData() (*TouchData, error) {
	var data TouchData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetViewportData extracts viewport geometry from a message
func (m *Message) GetViewportData() (*ViewportData, error) {
	var data ViewportData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetConfigData extracts a configuration update from a message
func (m *Message) GetConfigData() (*ConfigData, error) {
	var data ConfigData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetViewStateData extracts a camera state frame from a message
func (m *Message) GetViewStateData() (*ViewStateData, error) {
	var data ViewStateData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetClickData extracts a recognized click from a message
func (m *Message) GetClickData() (*ClickData, error) {
	var data ClickData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
