package plan

import "github.com/santhosh-tekuri/jsonschema/v5"

// requestSchema shapes the recompute request body. Field values stay loose
// (string or native) because the normalizer performs coercion; only the
// structure is enforced here.
const requestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["trains"],
  "properties": {
    "trains": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["train_id"],
        "properties": {
          "train_id": {"type": "string", "minLength": 1},
          "fitness_valid_until": {"type": "string"},
          "mileage_last_week": {"type": ["number", "string"]},
          "branding_required": {"type": ["boolean", "string"]},
          "branding_priority": {"type": ["integer", "string"]},
          "needs_cleaning": {"type": ["boolean", "string"]},
          "bay_position": {"type": ["integer", "string"]}
        }
      }
    },
    "job_cards": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["train_id"],
        "properties": {
          "train_id": {"type": "string", "minLength": 1},
          "job_card_id": {"type": "string"},
          "status": {"type": "string"},
          "severity": {"type": "string"}
        }
      }
    },
    "cleaning_slots": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "slot_id": {"type": "string"},
          "available": {"type": ["boolean", "string"]},
          "shift": {"type": "string"}
        }
      }
    },
    "config": {
      "type": "object",
      "properties": {
        "service_target": {"type": "integer"},
        "standby_target": {"type": "integer"},
        "planning_date": {"type": "string"},
        "cleaning_rank_by": {"type": "string"}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("recompute_request.json", requestSchema)
