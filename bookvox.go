// Package bookvox turns photographed book pages into clean, speakable text
// and then into audio.
//
// The core is the OCR post-processing pipeline: raw text from a vision
// extraction call is put in reading order, corrected under a tiered
// correction policy, and normalized into paragraphs suitable for
// text-to-speech.
//
// This package contains domain types, the pure text passes, and the
// collaborator interfaces. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, groq/, elevenlabs/).
package bookvox
