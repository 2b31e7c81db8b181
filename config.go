package bookvox

// DefaultVoiceID is the speech-synthesis voice used when none is configured.
const DefaultVoiceID = "3KUqqj6ZlrH5jkEAwiMb"

// Config holds the settings passed into service constructors.
type Config struct {
	CorrectionAPIKey string
	SynthesisAPIKey  string
	SynthesisVoiceID string
	DefaultTier      Tier
}

// Validate returns an error if the configuration is unusable.
// Missing API keys are not an error here: the affected collaborator reports
// EUNAVAILABLE when it is called.
func (c *Config) Validate() error {
	if !c.DefaultTier.Valid() {
		return Errorf(EINVALID, "invalid default tier %d", int(c.DefaultTier))
	}
	return nil
}

// VoiceID returns the configured voice, falling back to DefaultVoiceID.
func (c *Config) VoiceID() string {
	if c.SynthesisVoiceID == "" {
		return DefaultVoiceID
	}
	return c.SynthesisVoiceID
}
