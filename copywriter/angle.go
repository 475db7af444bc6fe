package copywriter

// The fixed rotation of descriptive angles. Each caption commits to one
// angle exclusively, and consecutive posts never share one.
var angles = []string{
	"shape",
	"grain",
	"surface",
	"craftsman's gesture",
	"light",
	"visual balance",
}

// ChooseAngle returns the angle following prev in the rotation, wrapping
// around. An empty or unknown prev resets to the first angle.
func ChooseAngle(prev string) string {
	if prev == "" {
		return angles[0]
	}
	for i, a := range angles {
		if a == prev {
			return angles[(i+1)%len(angles)]
		}
	}
	return angles[0]
}
