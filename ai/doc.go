// Package ai defines the interfaces for the AI collaborators used by the
// feedback pipeline: text embedding and feedback classification. Concrete
// implementations live in subpackages (openai for OpenAI-compatible
// services, mock for tests).
package ai
