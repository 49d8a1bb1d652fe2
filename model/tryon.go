package model

// TryOnState is the persisted overlay transform. Offsets are percentages of
// the container and are not clamped.
type TryOnState struct {
	UserPhoto        *string `json:"userImage"`
	OffsetX          float64 `json:"frameX"`
	OffsetY          float64 `json:"frameY"`
	Scale            float64 `json:"frameScale"`
	RotationDegrees  float64 `json:"frameRotation"`
	RemoveBackground bool    `json:"removeBackground"`
}

func DefaultTryOnState() TryOnState {
	return TryOnState{
		OffsetX: 50,
		OffsetY: 50,
		Scale:   1,
	}
}

// OverlayPlacement is the overlay rectangle in container pixels, rotated
// about its center.
type OverlayPlacement struct {
	CenterX         float64 `json:"center_x"`
	CenterY         float64 `json:"center_y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	RotationDegrees float64 `json:"rotation_degrees"`
}

type TryOnView struct {
	State    TryOnState `json:"state"`
	Dragging bool       `json:"dragging"`
	ScaleMin float64    `json:"scale_min"`
	ScaleMax float64    `json:"scale_max"`
	Step     float64    `json:"rotation_step"`
}

type TransformRequest struct {
	OffsetX  *float64 `json:"offset_x"`
	OffsetY  *float64 `json:"offset_y"`
	Scale    *float64 `json:"scale" validate:"omitempty,gte=0.5,lte=2.5"`
	Rotation *float64 `json:"rotation"`
}

type RotateRequest struct {
	Direction string `json:"direction" validate:"required,oneof=left right reset"`
}

type DragRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// OverlayImage is the displayable frame image. Data is empty when the source
// could not be read, in which case clients load SourceURL directly.
type OverlayImage struct {
	ProductID   string
	ContentType string
	Data        []byte
	SourceURL   string
	Filtered    bool
}
