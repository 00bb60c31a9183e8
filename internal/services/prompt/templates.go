package prompt

// Instruction templates follow a fixed contract: task description, an
// explicit JSON-only output requirement, and one worked example of the
// exact shape expected back. Models still wrap answers in prose often
// enough that recovery never trusts the contract alone.

const qaInstructionTemplate = `You are a policy assistant. Answer the question using only the policy documents provided below.

Respond only with a JSON object matching this shape, with no other text:
{"answer": "<your answer>", "confidence": <number between 0 and 1>, "policyId": <id of the policy the answer came from, or null>}

Example response:
{"answer": "Employees receive 20 vacation days per year.", "confidence": 0.9, "policyId": 3}

If the documents do not contain the answer, say so in the answer field and use a low confidence.

Question: %s

Policy documents:
%s`

const analysisInstructionTemplate = `You are a policy assistant. Summarize the document provided below and list its key points.

Respond only with a JSON object matching this shape, with no other text:
{"summary": "<two to three sentence summary>", "keyPoints": ["<key point>", "<key point>"]}

Example response:
{"summary": "This policy defines the expense reimbursement process. Claims must be submitted within 30 days with receipts attached.", "keyPoints": ["Claims submitted within 30 days", "Receipts required for all claims"]}

Document:
%s`

const documentQuestionTemplate = `You are a policy assistant. Answer the question using only the document provided below.

Respond only with a JSON object matching this shape, with no other text:
{"answer": "<your answer>", "confidence": <number between 0 and 1>}

Example response:
{"answer": "The notice period is four weeks.", "confidence": 0.85}

If the document does not contain the answer, say so in the answer field and use a low confidence.

Question: %s

Document:
%s`
