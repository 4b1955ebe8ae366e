package chattemplate

// Builtin returns the built-in variants in registration order. Each call
// returns fresh values, so callers may modify the result freely.
func Builtin() []Variant {
	return []Variant{
		chatML(),
		alpaca(),
		gemma(),
		mistralChat(),
		mistralInstruct(),
		llama3Chat(),
		llama2Chat(),
		llama2(),
		phi4Mini(),
		phi4(),
		phi35(),
		phi3(),
		phi2(),
		deepSeekR1(),
		deepSeekV3(),
		deepSeekV2(),
		vicuna(),
		zephyr(),
		qwen3(),
		bitNet(),
		commandR(),
		openChat(),
	}
}

const chatMLJinja = `{% for message in messages %}{{'<|im_start|>' + message['role'] + '\n' + message['content'] + '<|im_end|>' + '\n'}}{% endfor %}{% if add_generation_prompt %}{{ '<|im_start|>assistant\n' }}{% endif %}`

func chatML() Variant {
	return Variant{
		Name:            "chatml",
		Description:     "chatml (generic template)",
		NameMatches:     []string{"chatml", "hermes", "qwen"},
		TemplateMatches: []string{chatMLJinja},
		SystemPrefix:    "<|im_start|>system\n",
		SystemSuffix:    "<|im_end|>\n",
		PlayerPrefix:    named("<|im_start|>", "\n"),
		AIPrefix:        named("<|im_start|>", "\n"),
		RequestSuffix:   "<|im_end|>\n",
		PairSuffix:      "<|im_end|>\n",
		Stop:            stops("<|im_start|>", "<|im_end|>"),
	}
}

func qwen3() Variant {
	v := chatML()
	v.Name = "qwen3"
	v.Description = "qwen 3"
	v.NameMatches = []string{"qwen3", "qwen-3"}
	v.TemplateMatches = nil
	v.ThinkingMode = true
	return v
}

func alpaca() Variant {
	return Variant{
		Name:          "alpaca",
		Description:   "alpaca (best alternative)",
		NameMatches:   []string{"alpaca"},
		SystemSuffix:  "\n\n",
		PlayerPrefix:  named("### ", ":"),
		AIPrefix:      named("### ", ":"),
		Separator:     " ",
		RequestSuffix: "\n",
		PairSuffix:    "\n",
		Stop:          stops("###"),
	}
}

const gemmaJinja = `{{ bos_token }}{% if messages[0]['role'] == 'system' %}{{ raise_exception('System role not supported') }}{% endif %}{% for message in messages %}{% if (message['role'] == 'user') != (loop.index0 % 2 == 0) %}{{ raise_exception('Conversation roles must alternate user/assistant/user/assistant/...') }}{% endif %}{% if (message['role'] == 'assistant') %}{% set role = 'model' %}{% else %}{% set role = message['role'] %}{% endif %}{{ '<start_of_turn>' + role + '\n' + message['content'] | trim + '<end_of_turn>\n' }}{% endfor %}{% if add_generation_prompt %}{{'<start_of_turn>model\n'}}{% endif %}`

func gemma() Variant {
	return Variant{
		Name:            "gemma",
		Description:     "google gemma",
		NameMatches:     []string{"gemma"},
		TemplateMatches: []string{gemmaJinja},
		PlayerPrefix:    fixed("<start_of_turn>user\n"),
		AIPrefix:        fixed("<start_of_turn>model\n"),
		RequestSuffix:   "<end_of_turn>\n",
		PairSuffix:      "<end_of_turn>\n",
		NoSystemPrompt:  true,
		Stop:            stops("<start_of_turn>", "<end_of_turn>"),
	}
}

const mistralJinja = `{{ bos_token }}{% for message in messages %}{% if (message['role'] == 'user') != (loop.index0 % 2 == 0) %}{{ raise_exception('Conversation roles must alternate user/assistant/user/assistant/...') }}{% endif %}{% if message['role'] == 'user' %}{{ '[INST] ' + message['content'] + ' [/INST]' }}{% elif message['role'] == 'assistant' %}{{ message['content'] + eos_token}}{% else %}{{ raise_exception('Only user and assistant roles are supported!') }}{% endif %}{% endfor %}`

func mistralInstruct() Variant {
	return Variant{
		Name:            "mistral instruct",
		Description:     "mistral instruct",
		NameMatches:     []string{"mistral", "mixtral"},
		TemplateMatches: []string{mistralJinja},
		PromptPrefix:    "<s>",
		SystemSuffix:    "\n\n",
		RequestPrefix:   "[INST] ",
		RequestSuffix:   " [/INST]",
		PairSuffix:      "</s>",
		Stop:            stops("</s>", "[INST]", "[/INST]"),
	}
}

// mistralChat keeps the instruct delimiters and names both speakers inside them.
func mistralChat() Variant {
	v := mistralInstruct()
	v.Name = "mistral chat"
	v.Description = "mistral chat"
	v.NameMatches = nil
	v.TemplateMatches = nil
	v.PlayerPrefix = named("### ", ":")
	v.AIPrefix = named("### ", ":")
	v.Separator = " "
	v.Stop = stops("</s>", "[INST]", "[/INST]", "###")
	return v
}

const llama3Jinja = `{% set loop_messages = messages %}{% for message in loop_messages %}{% set content = '<|start_header_id|>' + message['role'] + '<|end_header_id|>\n\n'+ message['content'] | trim + '<|eot_id|>' %}{% if loop.index0 == 0 %}{% set content = bos_token + content %}{% endif %}{{ content }}{% endfor %}{% if add_generation_prompt %}{{ '<|start_header_id|>assistant<|end_header_id|>\n\n' }}{% endif %}`

func llama3Chat() Variant {
	return Variant{
		Name:            "llama3 chat",
		Description:     "llama 3 (chat)",
		NameMatches:     []string{"llama-3", "llama3", "llama 3"},
		TemplateMatches: []string{llama3Jinja},
		PromptPrefix:    "<|begin_of_text|>",
		SystemPrefix:    "<|start_header_id|>system<|end_header_id|>\n\n",
		SystemSuffix:    "<|eot_id|>",
		PlayerPrefix:    named("<|start_header_id|>", "<|end_header_id|>\n\n"),
		AIPrefix:        named("<|start_header_id|>", "<|end_header_id|>\n\n"),
		RequestSuffix:   "<|eot_id|>",
		PairSuffix:      "<|eot_id|>",
		Stop:            stops("<|eot_id|>"),
	}
}

func llama2() Variant {
	return Variant{
		Name:          "llama",
		Description:   "llama 2",
		NameMatches:   []string{"llama"},
		PromptPrefix:  "<s>",
		SystemPrefix:  "<<SYS>>\n",
		SystemSuffix:  "\n<</SYS>> ",
		RequestPrefix: "[INST] ",
		RequestSuffix: " [/INST]",
		PairSuffix:    " </s><s>",
		Stop:          stops("[INST]", "[/INST]"),
	}
}

func llama2Chat() Variant {
	v := llama2()
	v.Name = "llama chat"
	v.Description = "llama 2 (chat)"
	v.NameMatches = []string{"llama-2", "llama v2", "llama 2"}
	v.PlayerPrefix = named("### ", ":")
	v.AIPrefix = named("### ", ":")
	v.Separator = " "
	v.Stop = stops("[INST]", "[/INST]", "###")
	return v
}

func phi2() Variant {
	return Variant{
		Name:          "phi",
		Description:   "phi-2",
		NameMatches:   []string{"phi-2"},
		SystemSuffix:  "\n\n",
		PlayerPrefix:  named("", ":"),
		AIPrefix:      named("", ":"),
		Separator:     " ",
		RequestSuffix: "\n",
		PairSuffix:    "\n",
		Stop: func(player, ai string) []string {
			return []string{player + ":", ai + ":"}
		},
	}
}

const phi3Jinja = `{{ bos_token }}{% for message in messages %}{% if (message['role'] == 'user') %}{{'<|user|>' + '\n' + message['content'] + '<|end|>' + '\n' + '<|assistant|>' + '\n'}}{% elif (message['role'] == 'assistant') %}{{message['content'] + '<|end|>' + '\n'}}{% endif %}{% endfor %}`

func phi3() Variant {
	return Variant{
		Name:            "phi-3",
		Description:     "phi-3",
		NameMatches:     []string{"phi-3"},
		TemplateMatches: []string{phi3Jinja},
		PlayerPrefix:    fixed("<|user|>"),
		AIPrefix:        fixed("<|assistant|>"),
		Separator:       "\n",
		RequestSuffix:   "<|end|>\n",
		PairSuffix:      "<|end|>\n",
		NoSystemPrompt:  true,
		Stop:            stops("<|end|>", "<|user|>"),
	}
}

const phi35Jinja = `{% for message in messages %}{% if message['role'] == 'system' and message['content'] %}{{'<|system|>\n' + message['content'] + '<|end|>\n'}}{% elif message['role'] == 'user' %}{{'<|user|>\n' + message['content'] + '<|end|>\n'}}{% elif message['role'] == 'assistant' %}{{'<|assistant|>\n' + message['content'] + '<|end|>\n'}}{% endif %}{% endfor %}{% if add_generation_prompt %}{{ '<|assistant|>\n' }}{% else %}{{ eos_token }}{% endif %}`

func phi35() Variant {
	v := phi3()
	v.Name = "phi-3.5"
	v.Description = "phi-3.5"
	v.NameMatches = []string{"phi-3.5"}
	v.TemplateMatches = []string{phi35Jinja}
	v.SystemPrefix = "<|system|>\n"
	v.SystemSuffix = "<|end|>\n"
	v.NoSystemPrompt = false
	return v
}

const phi4MiniJinja = `{% for message in messages %}{% if message['role'] == 'system' and 'tools' in message and message['tools'] is not none %}{{ '<|' + message['role'] + '|>' + message['content'] + '<|tool|>' + message['tools'] + '<|/tool|>' + '<|end|>' }}{% else %}{{ '<|' + message['role'] + '|>' + message['content'] + '<|end|>' }}{% endif %}{% endfor %}{% if add_generation_prompt %}{{ '<|assistant|>' }}{% else %}{{ eos_token }}{% endif %}`

func phi4Mini() Variant {
	return Variant{
		Name:            "phi-4-mini",
		Description:     "phi-4-mini",
		NameMatches:     []string{"phi-4-mini"},
		TemplateMatches: []string{phi4MiniJinja},
		SystemPrefix:    "<|system|>",
		SystemSuffix:    "<|end|>",
		PlayerPrefix:    fixed("<|user|>"),
		AIPrefix:        fixed("<|assistant|>"),
		RequestSuffix:   "<|end|>",
		PairSuffix:      "<|end|>",
		Stop:            stops("<|end|>", "<|user|>"),
	}
}

const phi4Jinja = `{% for message in messages %}{% if (message['role'] == 'system') %}{{'<|im_start|>system<|im_sep|>' + message['content'] + '<|im_end|>'}}{% elif (message['role'] == 'user') %}{{'<|im_start|>user<|im_sep|>' + message['content'] + '<|im_end|>'}}{% elif (message['role'] == 'assistant') %}{{'<|im_start|>assistant<|im_sep|>' + message['content'] + '<|im_end|>'}}{% endif %}{% endfor %}{% if add_generation_prompt %}{{ '<|im_start|>assistant<|im_sep|>' }}{% endif %}`

func phi4() Variant {
	return Variant{
		Name:            "phi-4",
		Description:     "phi-4",
		NameMatches:     []string{"phi-4"},
		TemplateMatches: []string{phi4Jinja},
		SystemPrefix:    "<|im_start|>system<|im_sep|>",
		SystemSuffix:    "<|im_end|>",
		PlayerPrefix:    fixed("<|im_start|>user<|im_sep|>"),
		AIPrefix:        fixed("<|im_start|>assistant<|im_sep|>"),
		RequestSuffix:   "<|im_end|>",
		PairSuffix:      "<|im_end|>",
		Stop:            stops("<|im_end|>", "<|im_start|>"),
	}
}

const deepSeekV2Jinja = `{% if not add_generation_prompt is defined %}{% set add_generation_prompt = false %}{% endif %}{{ bos_token }}{% for message in messages %}{% if message['role'] == 'user' %}{{ 'User: ' + message['content'] + '\n\n' }}{% elif message['role'] == 'assistant' %}{{ 'Assistant: ' + message['content'] + eos_token }}{% elif message['role'] == 'system' %}{{ message['content'] + '\n\n' }}{% endif %}{% endfor %}{% if add_generation_prompt %}{{ 'Assistant:' }}{% endif %}`

func deepSeekV2() Variant {
	return Variant{
		Name:            "deepseek-v2",
		Description:     "deepseek v2",
		NameMatches:     []string{"deepseek-v2", "deepseek-llm"},
		TemplateMatches: []string{deepSeekV2Jinja},
		PromptPrefix:    "<｜begin▁of▁sentence｜>",
		SystemSuffix:    "\n\n",
		PlayerPrefix:    fixed("User:"),
		AIPrefix:        fixed("Assistant:"),
		Separator:       " ",
		RequestSuffix:   "\n\n",
		PairSuffix:      "<｜end▁of▁sentence｜>",
		Stop:            stops("<｜end▁of▁sentence｜>", "User:", "Assistant:"),
	}
}

func deepSeekV3() Variant {
	v := deepSeekV2()
	v.Name = "deepseek-v3"
	v.Description = "deepseek v3"
	v.NameMatches = []string{"deepseek-v2.5", "deepseek-v3"}
	v.TemplateMatches = nil
	v.SystemSuffix = ""
	v.PlayerPrefix = fixed("<｜User｜>")
	v.AIPrefix = fixed("<｜Assistant｜>")
	v.Separator = ""
	v.RequestSuffix = ""
	v.Stop = stops("<｜end▁of▁sentence｜>", "<｜User｜>", "<｜Assistant｜>")
	return v
}

const codeFence = "```"

// deepSeekR1Body is the shared head of the R1 templates; revisions differ
// only in the generation prompt they emit.
const deepSeekR1Body = `{% if not add_generation_prompt is defined %}{% set add_generation_prompt = false %}{% endif %}{% set ns = namespace(is_first=false, is_tool=false, is_output_first=true, system_prompt='') %}{%- for message in messages %}{%- if message['role'] == 'system' %}{% set ns.system_prompt = message['content'] %}{%- endif %}{%- endfor %}{{bos_token}}{{ns.system_prompt}}{%- for message in messages %}{%- if message['role'] == 'user' %}{%- set ns.is_tool = false -%}{{'<｜User｜>' + message['content']}}{%- endif %}{%- if message['role'] == 'assistant' and message['content'] is none %}{%- set ns.is_tool = false -%}{%- for tool in message['tool_calls']%}{%- if not ns.is_first %}{{'<｜Assistant｜><｜tool▁calls▁begin｜><｜tool▁call▁begin｜>' + tool['type'] + '<｜tool▁sep｜>' + tool['function']['name'] + '\n' + '` + codeFence + `json' + '\n' + tool['function']['arguments'] + '\n' + '` + codeFence + `' + '<｜tool▁call▁end｜>'}}{%- set ns.is_first = true -%}{%- else %}{{'\n' + '<｜tool▁call▁begin｜>' + tool['type'] + '<｜tool▁sep｜>' + tool['function']['name'] + '\n' + '` + codeFence + `json' + '\n' + tool['function']['arguments'] + '\n' + '` + codeFence + `' + '<｜tool▁call▁end｜>'}}{{'<｜tool▁calls▁end｜><｜end▁of▁sentence｜>'}}{%- endif %}{%- endfor %}{%- endif %}{%- if message['role'] == 'assistant' and message['content'] is not none %}{%- if ns.is_tool %}{{'<｜tool▁outputs▁end｜>' + message['content'] + '<｜end▁of▁sentence｜>'}}{%- set ns.is_tool = false -%}{%- else %}{% set content = message['content'] %}{% if '</think>' in content %}{% set content = content.split('</think>')[-1] %}{% endif %}{{'<｜Assistant｜>' + content + '<｜end▁of▁sentence｜>'}}{%- endif %}{%- endif %}{%- if message['role'] == 'tool' %}{%- set ns.is_tool = true -%}{%- if ns.is_output_first %}{{'<｜tool▁outputs▁begin｜><｜tool▁output▁begin｜>' + message['content'] + '<｜tool▁output▁end｜>'}}{%- set ns.is_output_first = false %}{%- else %}{{'\n<｜tool▁output▁begin｜>' + message['content'] + '<｜tool▁output▁end｜>'}}{%- endif %}{%- endif %}{%- endfor -%}{% if ns.is_tool %}{{'<｜tool▁outputs▁end｜>'}}{% endif %}`

const (
	deepSeekR1Jinja      = deepSeekR1Body + `{% if add_generation_prompt and not ns.is_tool %}{{'<｜Assistant｜>'}}{% endif %}`
	deepSeekR1ThinkJinja = deepSeekR1Body + `{% if add_generation_prompt and not ns.is_tool %}{{'<｜Assistant｜><think>\n'}}{% endif %}`
)

func deepSeekR1() Variant {
	v := deepSeekV3()
	v.Name = "deepseek-r1"
	v.Description = "deepseek r1"
	v.NameMatches = []string{"deepseek-r1"}
	v.TemplateMatches = []string{deepSeekR1Jinja, deepSeekR1ThinkJinja}
	v.ThinkingMode = true
	return v
}

func vicuna() Variant {
	return Variant{
		Name:         "vicuna",
		Description:  "vicuna",
		NameMatches:  []string{"vicuna"},
		SystemSuffix: "\n",
		PlayerPrefix: named("\n", ":"),
		AIPrefix:     named("\n", ":"),
		Separator:    " ",
		Stop: func(player, ai string) []string {
			return []string{player + ":", ai + ":"}
		},
	}
}

const zephyrJinja = "{% for message in messages %}\n{% if message['role'] == 'user' %}\n{{ '<|user|>\n' + message['content'] + eos_token }}\n{% elif message['role'] == 'system' %}\n{{ '<|system|>\n' + message['content'] + eos_token }}\n{% elif message['role'] == 'assistant' %}\n{{ '<|assistant|>\n'  + message['content'] + eos_token }}\n{% endif %}\n{% if loop.last and add_generation_prompt %}\n{{ '<|assistant|>' }}\n{% endif %}\n{% endfor %}"

func zephyr() Variant {
	return Variant{
		Name:            "zephyr",
		Description:     "zephyr",
		NameMatches:     []string{"zephyr"},
		TemplateMatches: []string{zephyrJinja},
		SystemPrefix:    "<|system|>\n",
		SystemSuffix:    "</s>\n",
		PlayerPrefix:    fixed("<|user|>\n"),
		AIPrefix:        fixed("<|assistant|>\n"),
		RequestSuffix:   "</s>\n",
		PairSuffix:      "</s>\n",
		Stop:            stops("</s>", "<|user|>"),
	}
}

func bitNet() Variant {
	return Variant{
		Name:          "bitnet",
		Description:   "bitnet",
		NameMatches:   []string{"bitnet"},
		PromptPrefix:  "<|begin_of_text|>",
		SystemPrefix:  "System: ",
		SystemSuffix:  "<|eot_id|>",
		PlayerPrefix:  fixed("User: "),
		AIPrefix:      fixed("Assistant: "),
		RequestSuffix: "<|eot_id|>",
		PairSuffix:    "<|eot_id|>",
		Stop:          stops("<|eot_id|>", "User:"),
	}
}

func commandR() Variant {
	return Variant{
		Name:          "command-r",
		Description:   "cohere command-r",
		NameMatches:   []string{"command-r", "c4ai"},
		PromptPrefix:  "<BOS_TOKEN>",
		SystemPrefix:  "<|START_OF_TURN_TOKEN|><|SYSTEM_TOKEN|>",
		SystemSuffix:  "<|END_OF_TURN_TOKEN|>",
		PlayerPrefix:  fixed("<|START_OF_TURN_TOKEN|><|USER_TOKEN|>"),
		AIPrefix:      fixed("<|START_OF_TURN_TOKEN|><|CHATBOT_TOKEN|>"),
		RequestSuffix: "<|END_OF_TURN_TOKEN|>",
		PairSuffix:    "<|END_OF_TURN_TOKEN|>",
		Stop:          stops("<|END_OF_TURN_TOKEN|>", "<|START_OF_TURN_TOKEN|>"),
	}
}

func openChat() Variant {
	return Variant{
		Name:          "openchat",
		Description:   "openchat 3.5",
		NameMatches:   []string{"openchat"},
		SystemSuffix:  "<|end_of_turn|>",
		PlayerPrefix:  fixed("GPT4 Correct User:"),
		AIPrefix:      fixed("GPT4 Correct Assistant:"),
		Separator:     " ",
		RequestSuffix: "<|end_of_turn|>",
		PairSuffix:    "<|end_of_turn|>",
		Stop:          stops("<|end_of_turn|>", "GPT4 Correct User:"),
	}
}
