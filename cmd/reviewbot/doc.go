// Reviewbot posts an automated LLM review on the pull request a CI run
// belongs to.
//
// It resolves the PR from the GitHub Actions event context, fetches the
// diff with the gh CLI (falling back to git when the diff is too large for
// the API), filters it down to source files, asks Groq for a review, and
// posts the result as a PR comment.
//
// Usage:
//
//	reviewbot              # run the full review pipeline
//	reviewbot filter       # filter a unified diff from stdin
//	reviewbot version      # print the version
//
// Configuration comes from the environment; GROQ_API_KEY is required.
package main
