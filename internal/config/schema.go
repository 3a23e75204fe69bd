package config

// profileSchema is the JSON schema the profile document must satisfy.
// Structural constraints live here; cross-field rules (exactly one of
// url/socket) are enforced by Validate.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["profiles"],
  "properties": {
    "profiles": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "properties": {
          "url": { "type": "string" },
          "socket": { "type": "string" },
          "headers": {
            "type": "object",
            "additionalProperties": { "type": "string" }
          },
          "timeout": { "type": "string" },
          "insecure": { "type": "boolean" }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`
