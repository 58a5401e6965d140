//go:build wasip1

package program

//go:wasmimport env sol_log_
func solLog(message, length uint64)

//go:wasmimport env sol_log_compute_units_
func solLogComputeUnits()

//go:wasmimport env sol_remaining_compute_units
func solRemainingComputeUnits() uint64

//go:wasmimport env sol_invoke_signed_c
func solInvokeSignedC(instruction, accountInfos, accountInfosLen, signerSeeds, signerSeedsLen uint64) uint64

//go:wasmimport env sol_get_clock_sysvar
func solGetClockSysvar(dst uint64) uint64

//go:wasmimport env sol_get_epoch_schedule_sysvar
func solGetEpochScheduleSysvar(dst uint64) uint64

//go:wasmimport env sol_get_fees_sysvar
func solGetFeesSysvar(dst uint64) uint64

//go:wasmimport env sol_get_rent_sysvar
func solGetRentSysvar(dst uint64) uint64

//go:wasmimport env sol_get_last_restart_slot
func solGetLastRestartSlot(dst uint64) uint64

//go:wasmimport env sol_get_epoch_rewards_sysvar
func solGetEpochRewardsSysvar(dst uint64) uint64

//go:wasmimport env sol_get_epoch_stake
func solGetEpochStake(voteAddress uint64) uint64

//go:wasmimport env sol_memcpy_
func solMemcpy(dst, src, n uint64)

//go:wasmimport env sol_memmove_
func solMemmove(dst, src, n uint64)

//go:wasmimport env sol_memcmp_
func solMemcmp(s1, s2, n, result uint64)

//go:wasmimport env sol_memset_
func solMemset(dst, c, n uint64)

//go:wasmimport env sol_get_return_data
func solGetReturnData(data, length, programID uint64) uint64

//go:wasmimport env sol_set_return_data
func solSetReturnData(data, length uint64)

//go:wasmimport env sol_log_data
func solLogData(fields, length uint64)

//go:wasmimport env sol_get_processed_sibling_instruction
func solGetProcessedSiblingInstruction(index, meta, programID, data, accounts uint64) uint64

//go:wasmimport env sol_get_stack_height
func solGetStackHeight() uint64

//go:wasmimport env sol_get_sysvar
func solGetSysvar(id, dst, offset, length uint64) uint64
