package extract

import "fmt"

// extractionPrompt asks the model for entities and relationships as a JSON
// object. The shape description, guidelines, and the closing "only the JSON
// object" instruction are all part of the contract: downstream parsing
// depends on the model honouring them.
const extractionPrompt = `Analyze the following text and extract entities and relationships. Return the result as a valid JSON object with the following structure:

{
    "entities": [
        {"name": "entity_name", "type": "entity_type", "description": "brief_description"}
    ],
    "relationships": [
        {"source": "entity1", "target": "entity2", "relationship": "relationship_type", "description": "relationship_description"}
    ]
}

Guidelines:
- Extract people, organizations, locations, concepts, events, and other significant entities
- Identify meaningful relationships between entities (works_for, located_in, part_of, leads_to, causes, etc.)
- Use clear, consistent entity names
- Provide brief but informative descriptions
- Focus on the most important entities and relationships
- Ensure all entities mentioned in relationships are also listed in the entities array

Text to analyze:
%s

Return only the JSON object, no additional text.`

// BuildPrompt formats the input text into the extraction instruction string.
// Pure function of the input; the caller is responsible for rejecting empty
// input before calling.
func BuildPrompt(text string) string {
	return fmt.Sprintf(extractionPrompt, text)
}
