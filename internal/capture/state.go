package capture

// State identifies the controller's position in the per-frame sequence.
type State int

const (
	StateIdle State = iota
	StateRandomizing
	StateSettlingRGB
	StateCapturingRGB
	StateApplyingMaskMaterials
	StateSettlingMask
	StateCapturingMask
	StateRestoringMaterials
	StateWritingMetadata
	StateDone
)

var stateNames = map[State]string{
	StateIdle:                  "idle",
	StateRandomizing:           "randomizing",
	StateSettlingRGB:           "settling_rgb",
	StateCapturingRGB:          "capturing_rgb",
	StateApplyingMaskMaterials: "applying_mask_materials",
	StateSettlingMask:          "settling_mask",
	StateCapturingMask:         "capturing_mask",
	StateRestoringMaterials:    "restoring_materials",
	StateWritingMetadata:       "writing_metadata",
	StateDone:                  "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
