package storage

import (
	"context"
	"fmt"

	"github.com/tanoeluis/VibrantBlog/models"
)

func ptr(s string) *string { return &s }

// samplePosts is the starter content a fresh blog ships with.
var samplePosts = []models.NewPost{
	{
		Title:    "Understanding TypeScript: A Practical Guide for React Developers",
		Content:  "# Understanding TypeScript\n\nTypeScript has become an essential tool for modern React development.\n\n## Benefits of TypeScript\n\n- Static type checking\n- Better IDE support\n- Enhanced code documentation\n- Safer refactoring\n\n## Getting Started\n\n```bash\nnpm install --save-dev typescript @types/react @types/react-dom\n```\n",
		Summary:  "TypeScript has become an essential tool for modern React development. In this comprehensive guide, we'll explore how TypeScript can enhance your React applications with strong typing, better autocompletion, and improved maintainability...",
		Author:   "Sarah Chen",
		Category: "Technology",
		ReadTime: ptr("5 min read"),
		ImageURL: ptr("https://images.unsplash.com/photo-1519389950473-47ba0277781c"),
	},
	{
		Title:    "Building Responsive UIs with Tailwind CSS",
		Content:  "# Building Responsive UIs with Tailwind CSS\n\nTailwind CSS is a utility-first CSS framework that allows you to build modern, responsive user interfaces without leaving your HTML.\n\n## Building a Responsive Layout\n\n```html\n<div class=\"grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-4\"></div>\n```\n",
		Summary:  "Learn how to create beautiful, responsive user interfaces using Tailwind CSS. This utility-first CSS framework allows you to build modern designs without leaving your HTML...",
		Author:   "Michael Roberts",
		Category: "React",
		ReadTime: ptr("3 min read"),
		ImageURL: ptr("https://images.unsplash.com/photo-1555066931-4365d14bab8c"),
	},
	{
		Title:    "Optimizing React Applications for Speed",
		Content:  "# Optimizing React Applications for Speed\n\nPerformance is a critical aspect of user experience in web applications.\n\n## Prevent Unnecessary Re-renders\n\n```jsx\nconst MyComponent = React.memo(function MyComponent(props) {});\n```\n\n> Always measure first to identify actual performance bottlenecks rather than optimizing blindly.\n",
		Summary:  "Performance matters in web applications. Discover practical techniques to improve your React app's performance through code splitting, memoization, and proper state management...",
		Author:   "Emily Johnson",
		Category: "Performance",
		ReadTime: ptr("4 min read"),
		ImageURL: ptr("https://images.unsplash.com/photo-1498050108023-c5249f4df085"),
	},
	{
		Title:    "Animation Fundamentals with Framer Motion",
		Content:  "# Animation Fundamentals with Framer Motion\n\nFramer Motion is a powerful animation library for React.\n\n## Basic Animations\n\n```jsx\n<motion.div initial={{ opacity: 0 }} animate={{ opacity: 1 }} />\n```\n",
		Summary:  "Add life to your React components with Framer Motion. This powerful animation library makes it easy to create smooth transitions and interactive UIs that delight users...",
		Author:   "David Kim",
		Category: "UI/UX",
		ReadTime: ptr("6 min read"),
		ImageURL: ptr("https://images.unsplash.com/photo-1551288049-bebda4e38f71"),
	},
	{
		Title:    "State Management Patterns in React Applications",
		Content:  "# State Management Patterns in React Applications\n\nState management is a critical aspect of building scalable React applications.\n\n## Local Component State\n\n```jsx\nconst [count, setCount] = useState(0);\n```\n\n## Context API\n\n## useReducer for Complex State Logic\n",
		Summary:  "Choosing the right state management approach is crucial for scalable React applications. Compare different patterns from React Context and useReducer to external libraries...",
		Author:   "Alex Turner",
		Category: "Architecture",
		ReadTime: ptr("7 min read"),
		ImageURL: ptr("https://images.unsplash.com/photo-1618477247222-acbdb0e159b3"),
	},
	{
		Title:    "Rendering Markdown in React Applications",
		Content:  "# Rendering Markdown in React Applications\n\nMarkdown has become an extremely popular format for writing content.\n\n```bash\nnpm install react-markdown remark-gfm\n```\n",
		Summary:  "Markdown provides a simple way to format content. Learn how to use react-markdown to render Markdown content in your React applications with syntax highlighting...",
		Author:   "Jessica Park",
		Category: "Markdown",
		ReadTime: ptr("3 min read"),
		ImageURL: ptr("https://images.unsplash.com/photo-1623282033815-40b05d96c903"),
	},
}

// SeedSamplePosts inserts the starter posts when the store has none and returns
// how many were created.
func SeedSamplePosts(ctx context.Context, s Storage) (int, error) {
	existing, err := s.GetAllPosts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, in := range samplePosts {
		if _, err := s.CreatePost(ctx, in); err != nil {
			return i, fmt.Errorf("failed to seed post %q: %w", in.Title, err)
		}
	}
	return len(samplePosts), nil
}
