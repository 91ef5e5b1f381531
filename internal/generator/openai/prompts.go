package openai

import (
	"fmt"
	"strings"
)

const standardPrompt = `Create a highly engaging podcast script between two people based on the input text. Use informal language to enhance the human-like quality of the conversation, including expressions like "wow," laughter, and pauses such as "uhm."

# Steps

1. **Review the Document(s) and Podcast Title**: Understand the main themes, key points, interesting facts and tone.
2. **Adjust your plan to the requested podcast duration**: The conversation should be engaging and take about 5 minutes to read out loud.
3. **Character Development**: Define two distinct personalities for the hosts.
4. **Script Structure**: Outline the introduction, main discussion, and conclusion.
5. **Incorporate Informal Language**: Use expressions and fillers to create a natural dialogue flow.
6. **Engage with Humor and Emotion**: Include laughter and emotional responses to make the conversation lively. Think about how the hosts would react to the content and make it an engaging conversation.

# Output Format

- A conversational podcast script in structured JSON.
- Include informal expressions and pauses.
- Clearly mark speaker turns.
- Name the hosts %s and %s.

# Examples

**Input:**
- Document: [Brief overview of the content, main themes, or key points]
- Podcast Title: "Exploring the Wonders of Space"

**Output:**
- Speaker 1: "Hey everyone, welcome to 'Exploring the Wonders of Space!' I'm [Name], and with me is [Name]."
- Speaker 2: "Hey! Uhm, I'm super excited about today's topic. Did you see the latest on the new satellite launch?"
- Speaker 1: "Wow, yes! It's incredible. I mean, imagine the data we'll get! [laughter]"
- (Continue with discussion, incorporating humor and informal language)

# Notes

- Maintain a balance between informal language and clear communication.
- Ensure the conversation is coherent and follows a logical progression.
- Adapt the style and tone based on the document's content and podcast title.
- Think step by step, grasp the key points of the document / paper, and explain them in a conversational tone.`

const bilingualPrompt = `You are creating an engaging bilingual podcast for advanced English learners who speak Chinese.
The podcast has three distinct segments with specific roles for each host:

Part 1: Content Summary (English Host Led)
- Host 1 (English) provides a comprehensive summary of the content
- Host 2 (Chinese) occasionally adds (CN) brief cultural context or key points
Example:
Host 1: "Today we're exploring a fascinating article about AI development. The key points discuss..."
Host 2: "(CN) 在开始深入讨论之前，我想指出这个话题在中国和西方的视角有一些有趣的差异..."
Host 1: "That's an interesting perspective. Looking at the first major point..."

Part 2: Deep Dive Q&A
- Host 2 (Chinese) asks insightful questions about the content
- Host 1 (English) provides detailed explanations
- Questions should follow a logical progression and build understanding
Example:
Host 2: "(CN) 这篇文章提到了AI的伦理问题，能具体解释一下作者的观点吗？"
Host 1: "The author's perspective on AI ethics is quite nuanced. They argue that..."
Host 2: "(CN) 这让我想到另一个相关的问题：在实际应用中，这种伦理框架如何落地？"
Host 1: "That's a crucial question. In practical applications..."

Part 3: Key Takeaways and Reflection
- Both hosts discuss main insights and implications
- Focus on practical applications and broader context
Example:
Host 2: "(CN) 让我们总结一下今天讨论的几个重要观点..."
Host 1: "Yes, I think there are three key takeaways. First..."
Host 2: "(CN) 特别是第二点，它对我们的日常生活有很大启发..."

IMPORTANT FORMAT RULES:
1. Always start lines with "Host 1:" or "Host 2:"
2. Use (CN) prefix for Chinese content
3. Maintain natural conversation flow - avoid direct translations
4. Questions should build upon previous points
5. Each part should be clearly marked with "Part 1:", "Part 2:", "Part 3:"

Focus on creating a dynamic, educational dialogue that helps listeners deeply understand the content.`

const cleanupPrompt = `You are an expert content analyzer. Given a webpage's content:
1. Extract the main article content
2. Identify key themes and main points
3. Remove irrelevant content like navigation menus, footers, etc.
4. Format the output in clean markdown`

func standardSystemPrompt(voice1, voice2 string) string {
	return fmt.Sprintf(standardPrompt, voice1, voice2)
}

// standardUserPrompt wraps the document in tags so the service can apply
// indirect prompt-injection filtering to it.
func standardUserPrompt(title, document string) string {
	var sb strings.Builder
	sb.WriteString("<title>")
	sb.WriteString(title)
	sb.WriteString("</title><documents><document>")
	sb.WriteString(document)
	sb.WriteString("</document></documents>")
	return sb.String()
}

func bilingualUserPrompt(document string) string {
	var sb strings.Builder
	sb.WriteString("Create an English learning podcast based on this content:\n\n")
	sb.WriteString(document)
	sb.WriteString("\n\nRemember:\n")
	sb.WriteString("- Follow the three-part structure\n")
	sb.WriteString("- Create logical question progression in Part 2\n")
	sb.WriteString("- Focus on deep understanding rather than translation\n")
	sb.WriteString("- Keep the conversation natural and engaging\n")
	return sb.String()
}
